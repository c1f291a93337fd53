package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// SoftDeleteProductCommandHandler marks a product deleted. Deleting an
// already deleted product is a no-op, so retries are safe.
type SoftDeleteProductCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLogger ports.AuditLogger
}

// NewSoftDeleteProductCommandHandler creates a handler for product deletion.
func NewSoftDeleteProductCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) SoftDeleteProductCommandHandler {
	return SoftDeleteProductCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the deletion command.
func (h SoftDeleteProductCommandHandler) Handle(ctx context.Context, cmd SoftDeleteProductCommand) error {
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

	prod, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if prod.IsDeleted() {
		return nil
	}

	if err = prod.SoftDelete(cmd.ActorID(), cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = productRepo.Update(ctx, prod); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordDeleted(ctx, cmd)

	return nil
}

func (h SoftDeleteProductCommandHandler) recordDeleted(ctx context.Context, cmd SoftDeleteProductCommand) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionProductDeleted,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		"",
		cmd.Reason(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
