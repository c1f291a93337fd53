package commands_test

import (
	"context"
	"testing"
	"time"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSoftDeleteProductCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	cmd, err := commands.NewSoftDeleteProductCommand(
		prod.ID(), "duplicate line", kernel.NewUUID(), access.RoleStaff,
	)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		productRepo.On("Update", ctx, prod).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewSoftDeleteProductCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)

	assert.True(t, prod.IsDeleted())
	assert.Equal(t, "duplicate line", prod.DeletionReason())
	assert.Equal(t, []audit.ActionType{audit.ActionProductDeleted}, auditLogger.Actions())
}

func TestSoftDeleteProductCommandHandler_Handle_AlreadyDeleted(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	require.NoError(t, prod.SoftDelete(kernel.NewUUID(), "ordered by mistake", time.Now().UTC()))
	cmd, err := commands.NewSoftDeleteProductCommand(
		prod.ID(), "duplicate line", kernel.NewUUID(), access.RoleStaff,
	)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewSoftDeleteProductCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err, "Deleting a deleted product is a safe retry")
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, "ordered by mistake", prod.DeletionReason(), "First deletion reason wins")
	assert.Empty(t, auditLogger.Entries)
}

func TestNewSoftDeleteProductCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewSoftDeleteProductCommand(
		kernel.NewUUID(), "", kernel.NewUUID(), access.RoleStaff,
	)

	require.Error(t, err)
}
