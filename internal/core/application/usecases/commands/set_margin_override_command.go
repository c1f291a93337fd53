package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrSetMarginOverrideCommandIsNotConstructed = errors.New(
	"SetMarginOverrideCommand must be created via NewSetMarginOverrideCommand constructor",
)

// SetMarginOverrideCommand sets or clears the per-product margin overrides.
// A nil percentage clears the override, falling back to the order-level
// margin or the system default.
type SetMarginOverrideCommand struct { //nolint:recvcheck //using for validation
	productID      kernel.UUID
	margin         *kernel.Percent
	shippingMargin *kernel.Percent
	actorID        kernel.UUID
	actorRole      access.Role

	guard guard.ConstructorGuard
}

// NewSetMarginOverrideCommand creates a command to adjust product margins.
func NewSetMarginOverrideCommand(
	productID kernel.UUID,
	margin *kernel.Percent,
	shippingMargin *kernel.Percent,
	actorID kernel.UUID,
	actorRole access.Role,
) (SetMarginOverrideCommand, error) {
	cmd := SetMarginOverrideCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return SetMarginOverrideCommand{}, err
	}

	if !access.Can(actorRole, access.CapManageMargins) {
		return SetMarginOverrideCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not manage margins",
		)
	}

	cmd.productID = productID
	cmd.margin = margin
	cmd.shippingMargin = shippingMargin
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetMarginOverrideCommand) Validate() error {
	return c.guard.Validate(ErrSetMarginOverrideCommandIsNotConstructed)
}

// ProductID returns the product whose overrides change.
func (c SetMarginOverrideCommand) ProductID() kernel.UUID {
	return c.productID
}

// Margin returns the new product margin override, nil to clear it.
func (c SetMarginOverrideCommand) Margin() *kernel.Percent {
	return c.margin
}

// ShippingMargin returns the new shipping margin override, nil to clear it.
func (c SetMarginOverrideCommand) ShippingMargin() *kernel.Percent {
	return c.shippingMargin
}

// ActorID returns the acting user's identifier.
func (c SetMarginOverrideCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c SetMarginOverrideCommand) ActorRole() access.Role {
	return c.actorRole
}
