package commands

import (
	"context"
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/core/domain/services"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/pkg/errs"
)

// SetManufacturerPriceCommandHandler records the factory's price for a
// product and immediately resolves the client-facing price through the
// margin hierarchy.
//
// When no margin can be resolved because the system defaults are not
// configured yet, the manufacturer price is still committed; the product
// stays on the unpriced diagnostics list until configuration is seeded and
// the repair batch picks it up.
type SetManufacturerPriceCommandHandler struct {
	uowFactory  OrderUoWFactory
	resolver    services.MarginResolver
	auditLogger ports.AuditLogger
}

// NewSetManufacturerPriceCommandHandler creates a handler for factory pricing.
func NewSetManufacturerPriceCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) SetManufacturerPriceCommandHandler {
	return SetManufacturerPriceCommandHandler{
		uowFactory:  uowFactory,
		resolver:    services.NewMarginResolver(),
		auditLogger: auditLogger,
	}
}

// Handle processes the pricing command.
func (h SetManufacturerPriceCommandHandler) Handle(ctx context.Context, cmd SetManufacturerPriceCommand) error {
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

	if err = prod.SetManufacturerPrice(cmd.Price()); err != nil {
		return err
	}

	if shipping := cmd.ShippingPrice(); shipping != nil {
		if err = prod.SetManufacturerShippingPrice(*shipping); err != nil {
			return err
		}
	}

	resolved, err := h.resolveClientPrice(ctx, uow, prod)
	if err != nil {
		return err
	}

	if err = productRepo.Update(ctx, prod); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordPriced(ctx, cmd, prod, resolved)

	return nil
}

// resolveClientPrice applies the margin hierarchy to the freshly priced
// product. Missing configuration is not an error here: the price record is
// committed unresolved and repaired later.
func (h SetManufacturerPriceCommandHandler) resolveClientPrice(
	ctx context.Context,
	uow OrderUoW,
	prod *product.OrderProduct,
) (bool, error) {
	pricingRepo := uow.PricingRepository()

	orderMargin, err := pricingRepo.GetOrderMargin(ctx, prod.OrderID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return false, err
		}
		orderMargin = nil
	}

	cfg, err := pricingRepo.LoadConfig(ctx)
	if err != nil {
		return false, err
	}

	resolved, err := h.resolver.ResolveProduct(prod, orderMargin, cfg)
	if err != nil {
		var missing *errs.ConfigurationMissingError
		if errors.As(err, &missing) {
			return resolved, nil
		}
		return false, err
	}

	return resolved, nil
}

func (h SetManufacturerPriceCommandHandler) recordPriced(
	ctx context.Context,
	cmd SetManufacturerPriceCommand,
	prod *product.OrderProduct,
	resolved bool,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionProductPriced,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		"",
		cmd.Price().String(),
		time.Now().UTC(),
	)
	if err == nil {
		h.auditLogger.Record(ctx, entry)
	}

	if !resolved {
		return
	}

	newValue := ""
	if clientPrice := prod.ClientPrice(); clientPrice != nil {
		newValue = clientPrice.String()
	}

	resolvedEntry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionPriceResolved,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		"",
		newValue,
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, resolvedEntry)
}
