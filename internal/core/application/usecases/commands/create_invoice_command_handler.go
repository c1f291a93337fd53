package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/billing"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// CreateInvoiceCommandHandler issues an invoice for an order. A sample-fee
// invoice is also attached to the order aggregate in the same transaction.
type CreateInvoiceCommandHandler struct {
	uowFactory  BillingUoWFactory
	auditLogger ports.AuditLogger
}

// NewCreateInvoiceCommandHandler creates a handler for invoice creation.
func NewCreateInvoiceCommandHandler(
	uowFactory BillingUoWFactory,
	auditLogger ports.AuditLogger,
) CreateInvoiceCommandHandler {
	return CreateInvoiceCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

// Handle processes the invoice command and returns the new invoice ID.
func (h CreateInvoiceCommandHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	billingRepo := uow.BillingRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	invoice, err := billing.NewInvoice(kernel.NewUUID(), cmd.OrderID(), cmd.Amount(), time.Now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = billingRepo.AddInvoice(ctx, invoice); err != nil {
		return kernel.UUID{}, err
	}

	for _, line := range cmd.Lines() {
		item, err := billing.NewInvoiceItem(
			kernel.NewUUID(),
			invoice.ID(),
			line.Description,
			line.Amount,
			line.Quantity,
		)
		if err != nil {
			return kernel.UUID{}, err
		}
		if err = billingRepo.AddInvoiceItem(ctx, item); err != nil {
			return kernel.UUID{}, err
		}
	}

	if cmd.IsSampleFee() {
		if err = ord.AttachSampleInvoice(invoice.ID()); err != nil {
			return kernel.UUID{}, err
		}
		if err = orderRepo.Update(ctx, ord); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.recordCreated(ctx, cmd, invoice.ID())

	return invoice.ID(), nil
}

func (h CreateInvoiceCommandHandler) recordCreated(
	ctx context.Context,
	cmd CreateInvoiceCommand,
	invoiceID kernel.UUID,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionInvoiceCreated,
		audit.TargetInvoice,
		invoiceID.String(),
		"",
		cmd.Amount().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
