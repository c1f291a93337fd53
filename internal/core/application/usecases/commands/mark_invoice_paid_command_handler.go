package commands

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// MarkInvoicePaidCommandHandler records an invoice payment. When the invoice
// is the order's sample-fee invoice, the payment also flips the order's
// sample-fee flag in the same transaction, unblocking sample approval.
//
// Replaying the same external reference is a no-op; a different reference on
// an already paid invoice is refused.
type MarkInvoicePaidCommandHandler struct {
	uowFactory  BillingUoWFactory
	auditLogger ports.AuditLogger
	notifier    ports.Notifier
}

// NewMarkInvoicePaidCommandHandler creates a handler for payment recording.
func NewMarkInvoicePaidCommandHandler(
	uowFactory BillingUoWFactory,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
) MarkInvoicePaidCommandHandler {
	return MarkInvoicePaidCommandHandler{
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
		notifier:    notifier,
	}
}

// Handle processes the payment command.
func (h MarkInvoicePaidCommandHandler) Handle(ctx context.Context, cmd MarkInvoicePaidCommand) error {
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

	billingRepo := uow.BillingRepository()
	orderRepo := uow.OrderRepository()

	invoice, err := billingRepo.GetInvoice(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	alreadyPaid := invoice.IsPaid()

	if err = invoice.MarkPaid(cmd.Amount(), cmd.ExternalRef(), time.Now().UTC()); err != nil {
		return err
	}

	// A replayed webhook lands here with nothing to persist.
	if alreadyPaid {
		return nil
	}

	if err = billingRepo.UpdateInvoice(ctx, invoice); err != nil {
		return err
	}

	ord, err := orderRepo.Get(ctx, invoice.OrderID())
	if err != nil {
		return err
	}

	sampleFeePaid := false
	if sampleInvoiceID := ord.SampleInvoiceID(); sampleInvoiceID != nil && sampleInvoiceID.IsEqual(invoice.ID()) {
		if err = ord.MarkSampleFeePaid(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}
		sampleFeePaid = true
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordPaid(ctx, cmd)
	if sampleFeePaid {
		h.recordSampleFeePaid(ctx, cmd, ord.ID())
		h.notifier.Notify(ctx, ord.ClientID(), ports.NotifySampleFeePaid, "Sample fee received", ord.ID())
	}

	return nil
}

func (h MarkInvoicePaidCommandHandler) recordPaid(ctx context.Context, cmd MarkInvoicePaidCommand) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionInvoicePaid,
		audit.TargetInvoice,
		cmd.InvoiceID().String(),
		"",
		cmd.ExternalRef(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}

func (h MarkInvoicePaidCommandHandler) recordSampleFeePaid(
	ctx context.Context,
	cmd MarkInvoicePaidCommand,
	orderID kernel.UUID,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionSampleFeePaid,
		audit.TargetOrder,
		orderID.String(),
		"",
		cmd.InvoiceID().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}
