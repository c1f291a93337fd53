package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrSetManufacturerPriceCommandIsNotConstructed = errors.New(
	"SetManufacturerPriceCommand must be created via NewSetManufacturerPriceCommand constructor",
)

// SetManufacturerPriceCommand represents the factory pricing a product line,
// optionally together with a shipping price.
type SetManufacturerPriceCommand struct { //nolint:recvcheck //using for validation
	productID     kernel.UUID
	price         kernel.Money
	shippingPrice *kernel.Money
	actorID       kernel.UUID
	actorRole     access.Role

	guard guard.ConstructorGuard
}

// NewSetManufacturerPriceCommand creates a command to record a factory price.
// The actor's role must hold the pricing capability.
func NewSetManufacturerPriceCommand(
	productID kernel.UUID,
	price kernel.Money,
	shippingPrice *kernel.Money,
	actorID kernel.UUID,
	actorRole access.Role,
) (SetManufacturerPriceCommand, error) {
	cmd := SetManufacturerPriceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return SetManufacturerPriceCommand{}, err
	}

	if !access.Can(actorRole, access.CapSetManufacturerPrice) {
		return SetManufacturerPriceCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not set manufacturer prices",
		)
	}

	cmd.productID = productID
	cmd.price = price
	cmd.shippingPrice = shippingPrice
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetManufacturerPriceCommand) Validate() error {
	return c.guard.Validate(ErrSetManufacturerPriceCommandIsNotConstructed)
}

// ProductID returns the product being priced.
func (c SetManufacturerPriceCommand) ProductID() kernel.UUID {
	return c.productID
}

// Price returns the factory-facing price.
func (c SetManufacturerPriceCommand) Price() kernel.Money {
	return c.price
}

// ShippingPrice returns the factory-facing shipping price, nil when not quoted.
func (c SetManufacturerPriceCommand) ShippingPrice() *kernel.Money {
	return c.shippingPrice
}

// ActorID returns the acting user's identifier.
func (c SetManufacturerPriceCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c SetManufacturerPriceCommand) ActorRole() access.Role {
	return c.actorRole
}
