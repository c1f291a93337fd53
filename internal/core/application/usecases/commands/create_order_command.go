package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to initiate a new purchase order
// linking a client with a manufacturer. The order number is assigned by the
// handler from the number sequence.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	clientID       kernel.UUID
	manufacturerID kernel.UUID
	actorID        kernel.UUID
	actorRole      access.Role

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to initiate an order.
// Only internal staff may create orders.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	manufacturerID kernel.UUID,
	actorID kernel.UUID,
	actorRole access.Role,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		clientID.Validate(),
		manufacturerID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if !actorRole.IsInternal() {
		return CreateOrderCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"only internal staff may create orders",
		)
	}

	cmd.orderID = orderID
	cmd.clientID = clientID
	cmd.manufacturerID = manufacturerID
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the purchasing client's identifier.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// ManufacturerID returns the producing factory's identifier.
func (c CreateOrderCommand) ManufacturerID() kernel.UUID {
	return c.manufacturerID
}

// ActorID returns the acting user's identifier.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c CreateOrderCommand) ActorRole() access.Role {
	return c.actorRole
}
