package commands_test

import (
	"context"
	"testing"
	"time"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/billing"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openInvoice(t *testing.T, orderID kernel.UUID, amount int64) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(kernel.NewUUID(), orderID, cents(t, amount), time.Now().UTC())
	require.NoError(t, err)
	return inv
}

func paidCommand(t *testing.T, invoiceID kernel.UUID, amount int64, externalRef string) commands.MarkInvoicePaidCommand {
	t.Helper()
	cmd, err := commands.NewMarkInvoicePaidCommand(
		invoiceID, cents(t, amount), externalRef, kernel.NewUUID(), access.RoleStaff,
	)
	require.NoError(t, err)
	return cmd
}

func TestMarkInvoicePaidCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	ord := draftOrder(t)
	inv := openInvoice(t, ord.ID(), 25000)
	cmd := paidCommand(t, inv.ID(), 25000, "pay_001")

	billingRepo := new(MockBillingRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillingRepository").Return(billingRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		billingRepo.On("GetInvoice", ctx, inv.ID()).Return(inv, nil).Once(),
		billingRepo.On("UpdateInvoice", ctx, inv).Return(nil).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)
	notifier := new(RecordingNotifier)

	h := commands.NewMarkInvoicePaidCommandHandler(factory, auditLogger, notifier)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	billingRepo.AssertExpectations(t)

	assert.True(t, inv.IsPaid())
	assert.Equal(t, "pay_001", inv.ExternalRef())
	assert.Equal(t, []audit.ActionType{audit.ActionInvoicePaid}, auditLogger.Actions())
	assert.Empty(t, notifier.Notifications, "A plain invoice carries no sample notification")
}

func TestMarkInvoicePaidCommandHandler_Handle_SampleFeeInvoice(t *testing.T) {
	ctx := context.Background()
	ord := draftOrder(t)
	fee := cents(t, 7500)
	require.NoError(t, ord.RequestSample(&fee))
	inv := openInvoice(t, ord.ID(), 7500)
	require.NoError(t, ord.AttachSampleInvoice(inv.ID()))
	cmd := paidCommand(t, inv.ID(), 7500, "pay_sample_001")

	billingRepo := new(MockBillingRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillingRepository").Return(billingRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		billingRepo.On("GetInvoice", ctx, inv.ID()).Return(inv, nil).Once(),
		billingRepo.On("UpdateInvoice", ctx, inv).Return(nil).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)
	notifier := new(RecordingNotifier)

	h := commands.NewMarkInvoicePaidCommandHandler(factory, auditLogger, notifier)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)

	assert.True(t, ord.SampleFeePaid())
	assert.Equal(t,
		[]audit.ActionType{audit.ActionInvoicePaid, audit.ActionSampleFeePaid},
		auditLogger.Actions())
	require.Len(t, notifier.Notifications, 1)
	assert.Equal(t, ports.NotifySampleFeePaid, notifier.Notifications[0].Kind)
	assert.True(t, ord.ClientID().IsEqual(notifier.Notifications[0].UserID))
}

func TestMarkInvoicePaidCommandHandler_Handle_ReplayedReference(t *testing.T) {
	ctx := context.Background()
	ord := draftOrder(t)
	inv := openInvoice(t, ord.ID(), 25000)
	require.NoError(t, inv.MarkPaid(cents(t, 25000), "pay_001", time.Now().UTC()))
	cmd := paidCommand(t, inv.ID(), 25000, "pay_001")

	billingRepo := new(MockBillingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillingRepository").Return(billingRepo).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		billingRepo.On("GetInvoice", ctx, inv.ID()).Return(inv, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewMarkInvoicePaidCommandHandler(factory, auditLogger, new(RecordingNotifier))
	err := h.Handle(ctx, cmd)

	require.NoError(t, err, "Replaying the same reference is a no-op")
	billingRepo.AssertNotCalled(t, "UpdateInvoice", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, auditLogger.Entries)
}

func TestMarkInvoicePaidCommandHandler_Handle_ConflictingReference(t *testing.T) {
	ctx := context.Background()
	ord := draftOrder(t)
	inv := openInvoice(t, ord.ID(), 25000)
	require.NoError(t, inv.MarkPaid(cents(t, 25000), "pay_001", time.Now().UTC()))
	cmd := paidCommand(t, inv.ID(), 25000, "pay_002")

	billingRepo := new(MockBillingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillingRepository").Return(billingRepo).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		billingRepo.On("GetInvoice", ctx, inv.ID()).Return(inv, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkInvoicePaidCommandHandler(factory, new(RecordingAuditLogger), new(RecordingNotifier))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	var precondition *errs.PreconditionFailedError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, errs.ReasonStateNotReachable, precondition.Reason)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMarkInvoicePaidCommandHandler_Handle_InvoiceNotFound(t *testing.T) {
	ctx := context.Background()
	invoiceID := kernel.NewUUID()
	cmd := paidCommand(t, invoiceID, 25000, "pay_001")

	billingRepo := new(MockBillingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillingRepository").Return(billingRepo).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		billingRepo.On("GetInvoice", ctx, invoiceID).
			Return(nil, errs.NewObjectNotFoundError("invoiceID", invoiceID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkInvoicePaidCommandHandler(factory, new(RecordingAuditLogger), new(RecordingNotifier))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	var notFound *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
