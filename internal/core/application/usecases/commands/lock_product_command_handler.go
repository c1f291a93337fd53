package commands

import (
	"context"
	"strconv"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// LockProductCommandHandler flips a product's pricing lock. While locked,
// manufacturer price writes are refused with a LockedError.
type LockProductCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLogger ports.AuditLogger
}

// NewLockProductCommandHandler creates a handler for lock changes.
func NewLockProductCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) LockProductCommandHandler {
	return LockProductCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the lock command.
func (h LockProductCommandHandler) Handle(ctx context.Context, cmd LockProductCommand) error {
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

	wasLocked := prod.IsLocked()

	if cmd.Lock() {
		err = prod.Lock()
	} else {
		err = prod.Unlock()
	}
	if err != nil {
		return err
	}

	if err = productRepo.Update(ctx, prod); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordLockChange(ctx, cmd, wasLocked)

	return nil
}

func (h LockProductCommandHandler) recordLockChange(
	ctx context.Context,
	cmd LockProductCommand,
	wasLocked bool,
) {
	action := audit.ActionProductLocked
	if !cmd.Lock() {
		action = audit.ActionProductUnlocked
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		action,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		strconv.FormatBool(wasLocked),
		strconv.FormatBool(cmd.Lock()),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
