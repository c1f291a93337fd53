package commands

import (
	"context"
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/core/domain/services"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/pkg/errs"
)

// SetOrderMarginCommandHandler manages the order-level margin record.
//
// The record is created lazily on first use. After the change, every live
// product of the order that does not carry its own override is re-resolved
// in the same transaction, so prices and margins move together.
type SetOrderMarginCommandHandler struct {
	uowFactory  OrderUoWFactory
	resolver    services.MarginResolver
	auditLogger ports.AuditLogger
}

// NewSetOrderMarginCommandHandler creates a handler for order margins.
func NewSetOrderMarginCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) SetOrderMarginCommandHandler {
	return SetOrderMarginCommandHandler{
		uowFactory:  uowFactory,
		resolver:    services.NewMarginResolver(),
		auditLogger: auditLogger,
	}
}

// Handle processes the order margin command.
func (h SetOrderMarginCommandHandler) Handle(ctx context.Context, cmd SetOrderMarginCommand) error {
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

	orderRepo := uow.OrderRepository()
	pricingRepo := uow.PricingRepository()

	// The order must exist; margins for purged or unknown orders are refused.
	if _, err := orderRepo.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	margin, err := pricingRepo.GetOrderMargin(ctx, cmd.OrderID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		margin, err = pricing.NewOrderMargin(cmd.OrderID())
		if err != nil {
			return err
		}
	}

	oldMargin := formatPercent(margin.MarginPercentage())

	margin.SetMarginPercentage(cmd.Margin())
	margin.SetShippingMarginPercentage(cmd.ShippingMargin())

	if err = pricingRepo.SaveOrderMargin(ctx, margin); err != nil {
		return err
	}

	if err = h.reresolveProducts(ctx, uow, margin); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordMarginChange(ctx, cmd, oldMargin)

	return nil
}

// reresolveProducts recomputes client prices for the order's live products
// under the new margin. Products without a manufacturer price and products
// the configuration cannot resolve yet are skipped, not failed.
func (h SetOrderMarginCommandHandler) reresolveProducts(
	ctx context.Context,
	uow OrderUoW,
	margin *pricing.OrderMargin,
) error {
	productRepo := uow.ProductRepository()
	pricingRepo := uow.PricingRepository()

	cfg, err := pricingRepo.LoadConfig(ctx)
	if err != nil {
		return err
	}

	products, err := productRepo.GetByOrder(ctx, margin.OrderID())
	if err != nil {
		return err
	}

	for _, prod := range products {
		changed, err := h.resolver.ResolveProduct(prod, margin, cfg)
		if err != nil {
			var missing *errs.ConfigurationMissingError
			if errors.As(err, &missing) {
				continue
			}
			return err
		}
		if !changed {
			continue
		}
		if err = productRepo.Update(ctx, prod); err != nil {
			return err
		}
	}

	return nil
}

func (h SetOrderMarginCommandHandler) recordMarginChange(
	ctx context.Context,
	cmd SetOrderMarginCommand,
	oldMargin string,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionOrderMarginChanged,
		audit.TargetOrder,
		cmd.OrderID().String(),
		oldMargin,
		formatPercent(cmd.Margin()),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
