package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/pkg/errs"
)

// AddProductCommandHandler attaches product lines to draft orders.
// Products may only be added while the order is still in Draft.
type AddProductCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLogger ports.AuditLogger
}

// NewAddProductCommandHandler creates a handler for attaching products.
func NewAddProductCommandHandler(uowFactory OrderUoWFactory, auditLogger ports.AuditLogger) AddProductCommandHandler {
	return AddProductCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the add-product command.
func (h AddProductCommandHandler) Handle(ctx context.Context, cmd AddProductCommand) error {
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

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if ord.Status() != order.Draft {
		return errs.NewPreconditionFailedError(
			errs.ReasonStateNotReachable,
			"products can only be added to draft orders",
		)
	}

	productRepo := uow.ProductRepository()

	prod, err := product.NewOrderProduct(cmd.ProductID(), cmd.OrderID(), cmd.Name())
	if err != nil {
		return err
	}

	if err = productRepo.Add(ctx, prod); err != nil {
		return err
	}

	for _, spec := range cmd.Items() {
		item, itemErr := product.NewOrderItem(kernel.NewUUID(), prod.ID(), spec.Variant, spec.Quantity)
		if itemErr != nil {
			return itemErr
		}
		if itemErr = productRepo.AddItem(ctx, item); itemErr != nil {
			return itemErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if entry, auditErr := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionProductAdded,
		audit.TargetOrderProduct,
		cmd.ProductID().String(),
		"",
		cmd.Name(),
		time.Now().UTC(),
	); auditErr == nil {
		h.auditLogger.Record(ctx, entry)
	}

	return nil
}
