package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrSoftDeleteProductCommandIsNotConstructed = errors.New(
	"SoftDeleteProductCommand must be created via NewSoftDeleteProductCommand constructor",
)

// SoftDeleteProductCommand removes a product from active views while keeping
// the row for the deleted-items report. A reason is mandatory.
type SoftDeleteProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	reason    string
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewSoftDeleteProductCommand creates a command to soft-delete a product.
func NewSoftDeleteProductCommand(
	productID kernel.UUID,
	reason string,
	actorID kernel.UUID,
	actorRole access.Role,
) (SoftDeleteProductCommand, error) {
	cmd := SoftDeleteProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return SoftDeleteProductCommand{}, err
	}

	if reason == "" {
		return SoftDeleteProductCommand{}, errs.NewValueIsRequiredError("reason")
	}

	if !access.Can(actorRole, access.CapDeleteProducts) {
		return SoftDeleteProductCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not delete products",
		)
	}

	cmd.productID = productID
	cmd.reason = reason
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SoftDeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteProductCommandIsNotConstructed)
}

// ProductID returns the product being deleted.
func (c SoftDeleteProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Reason returns the operator-supplied deletion reason.
func (c SoftDeleteProductCommand) Reason() string {
	return c.reason
}

// ActorID returns the acting user's identifier.
func (c SoftDeleteProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c SoftDeleteProductCommand) ActorRole() access.Role {
	return c.actorRole
}
