package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/ports"
)

// CreateOrderCommandHandler initiates purchase orders in Draft status.
// Assigns the next order number from the persistent sequence.
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	numberPrefix string
	auditLogger  ports.AuditLogger
}

// NewCreateOrderCommandHandler creates a handler for order initiation.
// numberPrefix is the deployment's order-number prefix, e.g. "FO".
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	numberPrefix string,
	auditLogger ports.AuditLogger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		numberPrefix: numberPrefix,
		auditLogger:  auditLogger,
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	seq, err := orderRepo.NextNumberSequence(ctx)
	if err != nil {
		return err
	}

	number, err := order.NewNumber(h.numberPrefix, seq)
	if err != nil {
		return err
	}

	ord, err := order.NewOrder(cmd.OrderID(), number, cmd.ClientID(), cmd.ManufacturerID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if entry, auditErr := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionOrderCreated,
		audit.TargetOrder,
		cmd.OrderID().String(),
		"",
		number.String(),
		time.Now().UTC(),
	); auditErr == nil {
		h.auditLogger.Record(ctx, entry)
	}

	return nil
}
