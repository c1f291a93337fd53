package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrUpdateSystemConfigCommandIsNotConstructed = errors.New(
	"UpdateSystemConfigCommand must be created via NewUpdateSystemConfigCommand constructor",
)

// UpdateSystemConfigCommand writes one system margin default.
type UpdateSystemConfigCommand struct { //nolint:recvcheck //using for validation
	key       string
	value     kernel.Percent
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewUpdateSystemConfigCommand creates a command to change a margin default.
// Only the known configuration keys are accepted.
func NewUpdateSystemConfigCommand(
	key string,
	value kernel.Percent,
	actorID kernel.UUID,
	actorRole access.Role,
) (UpdateSystemConfigCommand, error) {
	cmd := UpdateSystemConfigCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return UpdateSystemConfigCommand{}, err
	}

	if key != pricing.ConfigKeyDefaultMargin && key != pricing.ConfigKeyDefaultShippingMargin {
		return UpdateSystemConfigCommand{}, errs.NewValueIsInvalidError("key")
	}

	if !access.Can(actorRole, access.CapManageMargins) {
		return UpdateSystemConfigCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not change system configuration",
		)
	}

	cmd.key = key
	cmd.value = value
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSystemConfigCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSystemConfigCommandIsNotConstructed)
}

// Key returns the configuration key being written.
func (c UpdateSystemConfigCommand) Key() string {
	return c.key
}

// Value returns the new percentage value.
func (c UpdateSystemConfigCommand) Value() kernel.Percent {
	return c.value
}

// ActorID returns the acting user's identifier.
func (c UpdateSystemConfigCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c UpdateSystemConfigCommand) ActorRole() access.Role {
	return c.actorRole
}
