package commands_test

import (
	"context"
	"testing"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func routeCommand(t *testing.T, productID kernel.UUID, audience product.Audience) commands.RouteProductCommand {
	t.Helper()
	cmd, err := commands.NewRouteProductCommand(productID, audience, kernel.NewUUID(), access.RoleStaff)
	require.NoError(t, err)
	return cmd
}

func TestRouteProductCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	cmd := routeCommand(t, prod.ID(), product.AudienceManufacturer)

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

	h := commands.NewRouteProductCommandHandler(factory, auditLogger)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)

	assert.Equal(t, product.AudienceManufacturer, prod.Audience())
	require.Len(t, auditLogger.Entries, 1)
	assert.Equal(t, audit.ActionProductRouted, auditLogger.Entries[0].Action())
	assert.Equal(t, product.AudienceUnset.String(), auditLogger.Entries[0].OldValue())
	assert.Equal(t, product.AudienceManufacturer.String(), auditLogger.Entries[0].NewValue())
}

func TestRouteProductCommandHandler_Handle_ClientNeedsResolvedPrice(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	cmd := routeCommand(t, prod.ID(), product.AudienceClient)

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

	h := commands.NewRouteProductCommandHandler(factory, auditLogger)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	var precondition *errs.PreconditionFailedError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, errs.ReasonUnresolvedPricing, precondition.Reason)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, auditLogger.Entries)
}

func TestNewRouteProductCommand_PermissionCheck(t *testing.T) {
	_, err := commands.NewRouteProductCommand(
		kernel.NewUUID(), product.AudienceManufacturer, kernel.NewUUID(), access.RoleManufacturer,
	)

	require.Error(t, err)
	var precondition *errs.PreconditionFailedError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, errs.ReasonPermissionDenied, precondition.Reason)
}
