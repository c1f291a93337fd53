package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrApproveItemCommandIsNotConstructed = errors.New(
	"ApproveItemCommand must be created via NewApproveItemCommand constructor",
)

// ApproveItemCommand records a review decision on an order item. Staff and
// admins write the admin review track; manufacturers write theirs. The two
// tracks are independent.
type ApproveItemCommand struct { //nolint:recvcheck //using for validation
	itemID    kernel.UUID
	decision  product.Approval
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewApproveItemCommand creates a command to review an order item.
func NewApproveItemCommand(
	itemID kernel.UUID,
	decision product.Approval,
	actorID kernel.UUID,
	actorRole access.Role,
) (ApproveItemCommand, error) {
	cmd := ApproveItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemID.Validate(),
		decision.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return ApproveItemCommand{}, err
	}

	if !access.Can(actorRole, access.CapApproveItems) {
		return ApproveItemCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not review items",
		)
	}

	cmd.itemID = itemID
	cmd.decision = decision
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveItemCommand) Validate() error {
	return c.guard.Validate(ErrApproveItemCommandIsNotConstructed)
}

// ItemID returns the item being reviewed.
func (c ApproveItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Decision returns the review decision.
func (c ApproveItemCommand) Decision() product.Approval {
	return c.decision
}

// ActorID returns the acting user's identifier.
func (c ApproveItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c ApproveItemCommand) ActorRole() access.Role {
	return c.actorRole
}
