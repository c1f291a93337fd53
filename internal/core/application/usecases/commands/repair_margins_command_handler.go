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

// RepairReport summarizes one margin repair run. A product that still cannot
// be resolved is reported as a failure entry, not as a command error.
type RepairReport struct {
	Examined int
	Repaired int
	Failures []RepairFailure
}

// RepairFailure names one product the batch could not resolve and why.
type RepairFailure struct {
	ProductID kernel.UUID
	Reason    string
}

// RepairMarginsCommandHandler walks every live product that carries a
// manufacturer price and re-runs margin resolution over it. Unpriced
// products gain a client price, drifted products (the default changed since
// they resolved) converge on the current hierarchy, and products whose
// shipping resolution was blocked on a missing default pick it up once
// seeded. Already-converged rows pass through untouched.
//
// The batch runs in one transaction. Per-product resolution failures are
// collected into the report and do not abort the rest of the batch; only
// storage failures roll the whole run back.
type RepairMarginsCommandHandler struct {
	uowFactory  OrderUoWFactory
	resolver    services.MarginResolver
	auditLogger ports.AuditLogger
}

// NewRepairMarginsCommandHandler creates a handler for the repair batch.
func NewRepairMarginsCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) RepairMarginsCommandHandler {
	return RepairMarginsCommandHandler{
		uowFactory:  uowFactory,
		resolver:    services.NewMarginResolver(),
		auditLogger: auditLogger,
	}
}

// Handle processes the repair command and returns the run report.
func (h RepairMarginsCommandHandler) Handle(ctx context.Context, cmd RepairMarginsCommand) (RepairReport, error) {
	if err := cmd.Validate(); err != nil {
		return RepairReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RepairReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	pricingRepo := uow.PricingRepository()

	cfg, err := pricingRepo.LoadConfig(ctx)
	if err != nil {
		return RepairReport{}, err
	}

	products, err := productRepo.GetManufacturerPriced(ctx)
	if err != nil {
		return RepairReport{}, err
	}

	report := RepairReport{Examined: len(products)}
	margins := map[string]*pricing.OrderMargin{}
	repaired := make([]kernel.UUID, 0, len(products))

	for _, prod := range products {
		orderMargin, err := h.orderMargin(ctx, uow, margins, prod.OrderID())
		if err != nil {
			return RepairReport{}, err
		}

		changed, err := h.resolver.ResolveProduct(prod, orderMargin, cfg)
		if err != nil {
			report.Failures = append(report.Failures, RepairFailure{
				ProductID: prod.ID(),
				Reason:    err.Error(),
			})
			continue
		}
		if !changed {
			continue
		}

		if err = productRepo.Update(ctx, prod); err != nil {
			return RepairReport{}, err
		}

		report.Repaired++
		repaired = append(repaired, prod.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return RepairReport{}, err
	}

	for _, productID := range repaired {
		h.recordRepaired(ctx, cmd, productID)
	}

	return report, nil
}

// orderMargin loads the order's margin record once per order, caching the
// absence as a nil entry.
func (h RepairMarginsCommandHandler) orderMargin(
	ctx context.Context,
	uow OrderUoW,
	cache map[string]*pricing.OrderMargin,
	orderID kernel.UUID,
) (*pricing.OrderMargin, error) {
	key := orderID.String()
	if margin, ok := cache[key]; ok {
		return margin, nil
	}

	margin, err := uow.PricingRepository().GetOrderMargin(ctx, orderID)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		margin = nil
	}

	cache[key] = margin

	return margin, nil
}

func (h RepairMarginsCommandHandler) recordRepaired(
	ctx context.Context,
	cmd RepairMarginsCommand,
	productID kernel.UUID,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionPriceResolved,
		audit.TargetOrderProduct,
		productID.String(),
		"",
		"repaired",
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
