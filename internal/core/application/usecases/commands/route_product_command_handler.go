package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// RouteProductCommandHandler routes a product to a viewing audience.
// Routing to the client is refused while the product has no resolved client
// price; that guard lives in the product aggregate.
type RouteProductCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLogger ports.AuditLogger
}

// NewRouteProductCommandHandler creates a handler for product routing.
func NewRouteProductCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
) RouteProductCommandHandler {
	return RouteProductCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the routing command.
func (h RouteProductCommandHandler) Handle(ctx context.Context, cmd RouteProductCommand) error {
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

	oldAudience := prod.Audience()

	if err = prod.RouteTo(cmd.Audience()); err != nil {
		return err
	}

	if err = productRepo.Update(ctx, prod); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordRouted(ctx, cmd, oldAudience.String())

	return nil
}

func (h RouteProductCommandHandler) recordRouted(
	ctx context.Context,
	cmd RouteProductCommand,
	oldAudience string,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionProductRouted,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		oldAudience,
		cmd.Audience().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
