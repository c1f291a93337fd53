package commands_test

import (
	"context"
	"testing"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingItem(t *testing.T) *product.OrderItem {
	t.Helper()
	item, err := product.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "black / M", 100)
	require.NoError(t, err)
	return item
}

func reviewUoW(ctx context.Context, productRepo *MockProductRepository, item *product.OrderItem) *MockUoW {
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetItem", ctx, item.ID()).Return(item, nil).Once(),
		productRepo.On("UpdateItem", ctx, item).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return uow
}

func TestApproveItemCommandHandler_Handle_InternalWritesAdminTrack(t *testing.T) {
	ctx := context.Background()
	item := pendingItem(t)
	cmd, err := commands.NewApproveItemCommand(
		item.ID(), product.ApprovalApproved, kernel.NewUUID(), access.RoleStaff,
	)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := reviewUoW(ctx, productRepo, item)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewApproveItemCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)

	assert.Equal(t, product.ApprovalApproved, item.AdminApproval())
	assert.Equal(t, product.ApprovalPending, item.ManufacturerApproval(),
		"The manufacturer track is untouched")

	require.Len(t, auditLogger.Entries, 1)
	assert.Equal(t, audit.ActionItemApproved, auditLogger.Entries[0].Action())
	assert.Equal(t, product.ApprovalPending.String(), auditLogger.Entries[0].OldValue())
	assert.Equal(t, product.ApprovalApproved.String(), auditLogger.Entries[0].NewValue())
}

func TestApproveItemCommandHandler_Handle_ManufacturerWritesOwnTrack(t *testing.T) {
	ctx := context.Background()
	item := pendingItem(t)
	cmd, err := commands.NewApproveItemCommand(
		item.ID(), product.ApprovalRejected, kernel.NewUUID(), access.RoleManufacturer,
	)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := reviewUoW(ctx, productRepo, item)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveItemCommandHandler(factory, new(RecordingAuditLogger))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, product.ApprovalRejected, item.ManufacturerApproval())
	assert.Equal(t, product.ApprovalPending, item.AdminApproval())
}

func TestApproveItemCommandHandler_Handle_GetItemError(t *testing.T) {
	ctx := context.Background()
	itemID := kernel.NewUUID()
	cmd, err := commands.NewApproveItemCommand(
		itemID, product.ApprovalApproved, kernel.NewUUID(), access.RoleStaff,
	)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetItem", ctx, itemID).Return(nil, assert.AnError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveItemCommandHandler(factory, new(RecordingAuditLogger))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
