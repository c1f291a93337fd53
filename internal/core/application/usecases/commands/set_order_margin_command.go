package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrSetOrderMarginCommandIsNotConstructed = errors.New(
	"SetOrderMarginCommand must be created via NewSetOrderMarginCommand constructor",
)

// SetOrderMarginCommand sets or clears the order-level margin percentages.
// A nil percentage clears the field so products fall through to the system
// default.
type SetOrderMarginCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	margin         *kernel.Percent
	shippingMargin *kernel.Percent
	actorID        kernel.UUID
	actorRole      access.Role

	guard guard.ConstructorGuard
}

// NewSetOrderMarginCommand creates a command to adjust order margins.
func NewSetOrderMarginCommand(
	orderID kernel.UUID,
	margin *kernel.Percent,
	shippingMargin *kernel.Percent,
	actorID kernel.UUID,
	actorRole access.Role,
) (SetOrderMarginCommand, error) {
	cmd := SetOrderMarginCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return SetOrderMarginCommand{}, err
	}

	if !access.Can(actorRole, access.CapManageMargins) {
		return SetOrderMarginCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not manage margins",
		)
	}

	cmd.orderID = orderID
	cmd.margin = margin
	cmd.shippingMargin = shippingMargin
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderMarginCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderMarginCommandIsNotConstructed)
}

// OrderID returns the order whose margins change.
func (c SetOrderMarginCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Margin returns the new order margin, nil to clear it.
func (c SetOrderMarginCommand) Margin() *kernel.Percent {
	return c.margin
}

// ShippingMargin returns the new order shipping margin, nil to clear it.
func (c SetOrderMarginCommand) ShippingMargin() *kernel.Percent {
	return c.shippingMargin
}

// ActorID returns the acting user's identifier.
func (c SetOrderMarginCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c SetOrderMarginCommand) ActorRole() access.Role {
	return c.actorRole
}
