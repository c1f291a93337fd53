package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/core/ports"
)

// UpdateSystemConfigCommandHandler writes a system margin default.
//
// Existing resolved prices are not rewritten inline: a default change takes
// effect on already-priced products through the margin repair batch, whose
// work list covers every manufacturer-priced product. Run the repair after
// changing a default to converge the order book on it.
type UpdateSystemConfigCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLogger ports.AuditLogger
}

// NewUpdateSystemConfigCommandHandler creates a handler for configuration writes.
func NewUpdateSystemConfigCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) UpdateSystemConfigCommandHandler {
	return UpdateSystemConfigCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the configuration command.
func (h UpdateSystemConfigCommandHandler) Handle(ctx context.Context, cmd UpdateSystemConfigCommand) error {
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

	pricingRepo := uow.PricingRepository()

	oldValue := h.currentValue(ctx, uow, cmd.Key())

	if err := pricingRepo.SetDefault(ctx, cmd.Key(), cmd.Value()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.recordConfigChange(ctx, cmd, oldValue)

	return nil
}

func (h UpdateSystemConfigCommandHandler) currentValue(
	ctx context.Context,
	uow OrderUoW,
	key string,
) string {
	cfg, err := uow.PricingRepository().LoadConfig(ctx)
	if err != nil {
		return ""
	}

	switch key {
	case pricing.ConfigKeyDefaultMargin:
		if cfg.HasDefaultMargin() {
			pct, _ := cfg.DefaultMargin()
			return pct.String()
		}
	case pricing.ConfigKeyDefaultShippingMargin:
		if cfg.HasDefaultShippingMargin() {
			pct, _ := cfg.DefaultShippingMargin()
			return pct.String()
		}
	}

	return "unset"
}

func (h UpdateSystemConfigCommandHandler) recordConfigChange(
	ctx context.Context,
	cmd UpdateSystemConfigCommand,
	oldValue string,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionSystemConfigChanged,
		audit.TargetSystemConfig,
		cmd.Key(),
		oldValue,
		cmd.Value().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
