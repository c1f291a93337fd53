package commands

import (
	"context"
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/services"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/pkg/errs"
)

// SetMarginOverrideCommandHandler changes the per-product margin overrides
// and re-resolves the client price in the same transaction, so the stored
// price never reflects a stale margin.
type SetMarginOverrideCommandHandler struct {
	uowFactory  OrderUoWFactory
	resolver    services.MarginResolver
	auditLogger ports.AuditLogger
}

// NewSetMarginOverrideCommandHandler creates a handler for margin overrides.
func NewSetMarginOverrideCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) SetMarginOverrideCommandHandler {
	return SetMarginOverrideCommandHandler{
		uowFactory:  uowFactory,
		resolver:    services.NewMarginResolver(),
		auditLogger: auditLogger,
	}
}

// Handle processes the margin override command.
func (h SetMarginOverrideCommandHandler) Handle(ctx context.Context, cmd SetMarginOverrideCommand) error {
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
	pricingRepo := uow.PricingRepository()

	prod, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	oldMargin := formatPercent(prod.MarginOverride())

	if err = prod.SetMarginOverride(cmd.Margin()); err != nil {
		return err
	}
	if err = prod.SetShippingMarginOverride(cmd.ShippingMargin()); err != nil {
		return err
	}

	orderMargin, err := pricingRepo.GetOrderMargin(ctx, prod.OrderID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		orderMargin = nil
	}

	cfg, err := pricingRepo.LoadConfig(ctx)
	if err != nil {
		return err
	}

	if _, err = h.resolver.ResolveProduct(prod, orderMargin, cfg); err != nil {
		var missing *errs.ConfigurationMissingError
		if !errors.As(err, &missing) {
			return err
		}
	}

	if err = productRepo.Update(ctx, prod); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordMarginChange(ctx, cmd, oldMargin)

	return nil
}

func (h SetMarginOverrideCommandHandler) recordMarginChange(
	ctx context.Context,
	cmd SetMarginOverrideCommand,
	oldMargin string,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionMarginChanged,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		oldMargin,
		formatPercent(cmd.Margin()),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}

// formatPercent renders an optional percentage for audit values.
func formatPercent(pct *kernel.Percent) string {
	if pct == nil {
		return "inherited"
	}
	return pct.String()
}
