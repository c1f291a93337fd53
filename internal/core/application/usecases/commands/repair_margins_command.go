package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrRepairMarginsCommandIsNotConstructed = errors.New(
	"RepairMarginsCommand must be created via NewRepairMarginsCommand constructor",
)

// RepairMarginsCommand triggers a batch recomputation of client prices for
// products that carry a manufacturer price but no resolved client price.
type RepairMarginsCommand struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewRepairMarginsCommand creates a command to run the margin repair batch.
func NewRepairMarginsCommand(actorID kernel.UUID, actorRole access.Role) (RepairMarginsCommand, error) {
	cmd := RepairMarginsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return RepairMarginsCommand{}, err
	}

	if !access.Can(actorRole, access.CapManageMargins) {
		return RepairMarginsCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not repair margins",
		)
	}

	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RepairMarginsCommand) Validate() error {
	return c.guard.Validate(ErrRepairMarginsCommandIsNotConstructed)
}

// ActorID returns the acting user's identifier.
func (c RepairMarginsCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c RepairMarginsCommand) ActorRole() access.Role {
	return c.actorRole
}
