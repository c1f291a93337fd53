package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrLockProductCommandIsNotConstructed = errors.New(
	"LockProductCommand must be created via NewLockProductCommand constructor",
)

// LockProductCommand locks or unlocks a product's manufacturer pricing.
type LockProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	lock      bool
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewLockProductCommand creates a command to change a product's lock state.
func NewLockProductCommand(
	productID kernel.UUID,
	lock bool,
	actorID kernel.UUID,
	actorRole access.Role,
) (LockProductCommand, error) {
	cmd := LockProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return LockProductCommand{}, err
	}

	if !access.Can(actorRole, access.CapManageMargins) {
		return LockProductCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not lock products",
		)
	}

	cmd.productID = productID
	cmd.lock = lock
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LockProductCommand) Validate() error {
	return c.guard.Validate(ErrLockProductCommandIsNotConstructed)
}

// ProductID returns the product whose lock state changes.
func (c LockProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Lock reports whether the product is being locked (true) or unlocked.
func (c LockProductCommand) Lock() bool {
	return c.lock
}

// ActorID returns the acting user's identifier.
func (c LockProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c LockProductCommand) ActorRole() access.Role {
	return c.actorRole
}
