package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// ApproveItemCommandHandler records a review decision on an order item.
// The actor's role picks the review track: internal roles write the admin
// track, manufacturers write theirs.
type ApproveItemCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLogger ports.AuditLogger
}

// NewApproveItemCommandHandler creates a handler for item review.
func NewApproveItemCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) ApproveItemCommandHandler {
	return ApproveItemCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the review command.
func (h ApproveItemCommandHandler) Handle(ctx context.Context, cmd ApproveItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()

	item, err := productRepo.GetItem(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	var oldDecision string
	if cmd.ActorRole().IsInternal() {
		oldDecision = item.AdminApproval().String()
		err = item.SetAdminApproval(cmd.Decision())
	} else {
		oldDecision = item.ManufacturerApproval().String()
		err = item.SetManufacturerApproval(cmd.Decision())
	}
	if err != nil {
		return err
	}

	if err = productRepo.UpdateItem(ctx, item); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordDecision(ctx, cmd, oldDecision)

	return nil
}

func (h ApproveItemCommandHandler) recordDecision(
	ctx context.Context,
	cmd ApproveItemCommand,
	oldDecision string,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionItemApproved,
		audit.TargetOrderItem,
		cmd.ItemID().String(),
		oldDecision,
		cmd.Decision().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
