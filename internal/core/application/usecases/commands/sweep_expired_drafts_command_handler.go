package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/ports"
)

// SweepReport summarizes one draft expiry sweep. Orders that could not be
// purged are reported as failure entries; they do not stop the sweep.
type SweepReport struct {
	Examined int
	Purged   int
	Failures []PurgeFailure
}

// PurgeFailure names one order the sweep could not purge and why.
type PurgeFailure struct {
	OrderID kernel.UUID
	Reason  string
}

// SweepExpiredDraftsCommandHandler hard-deletes draft orders older than the
// retention window, each in its own transaction so one failed purge never
// rolls back the others. Audit entries are written outside the purge
// transaction and deliberately survive it.
type SweepExpiredDraftsCommandHandler struct {
	uowFactory  PurgeUoWFactory
	auditLogger ports.AuditLogger
	serviceID   kernel.UUID
}

// NewSweepExpiredDraftsCommandHandler creates a sweep handler. serviceID is
// the identity recorded as the audit actor for purges.
func NewSweepExpiredDraftsCommandHandler(
	uowFactory PurgeUoWFactory,
	auditLogger ports.AuditLogger,
	serviceID kernel.UUID,
) SweepExpiredDraftsCommandHandler {
	return SweepExpiredDraftsCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
		serviceID:   serviceID,
	}
}

// Handle runs the sweep and returns the run report.
func (h SweepExpiredDraftsCommandHandler) Handle(
	ctx context.Context,
	cmd SweepExpiredDraftsCommand,
) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{}, err
	}

	cutoff := time.Now().UTC().Add(-cmd.Retention())

	expired, err := h.listExpired(ctx, cutoff)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Examined: len(expired)}

	for _, ord := range expired {
		if err := h.purgeOne(ctx, ord.ID()); err != nil {
			report.Failures = append(report.Failures, PurgeFailure{
				OrderID: ord.ID(),
				Reason:  err.Error(),
			})
			continue
		}
		report.Purged++
		h.recordPurged(ctx, ord)
	}

	return report, nil
}

func (h SweepExpiredDraftsCommandHandler) listExpired(
	ctx context.Context,
	cutoff time.Time,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().GetExpiredDrafts(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return expired, nil
}

// purgeOne removes one order and its dependents in a dedicated transaction.
func (h SweepExpiredDraftsCommandHandler) purgeOne(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CascadeRepository().PurgeOrder(ctx, orderID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h SweepExpiredDraftsCommandHandler) recordPurged(ctx context.Context, ord *order.Order) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		h.serviceID,
		access.RoleAdmin,
		audit.ActionOrderPurged,
		audit.TargetOrder,
		ord.ID().String(),
		ord.Status().String(),
		"purged",
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
