package commands_test

import (
	"context"
	"testing"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetMarginOverrideCommandHandler_Handle_OverrideBeatsDefault(t *testing.T) {
	ctx := context.Background()
	prod := unresolvedProduct(t, 1000)

	quarter := pct(t, 25)
	cmd, err := commands.NewSetMarginOverrideCommand(prod.ID(), &quarter, nil, kernel.NewUUID(), access.RoleStaff)
	require.NoError(t, err)

	defaultMargin := pct(t, 80)
	cfg := pricing.NewConfig(&defaultMargin, nil)

	productRepo := new(MockProductRepository)
	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("PricingRepository").Return(pricingRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		pricingRepo.On("GetOrderMargin", ctx, prod.OrderID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", prod.OrderID())).Once(),
		pricingRepo.On("LoadConfig", ctx).Return(cfg, nil).Once(),
		productRepo.On("Update", ctx, prod).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewSetMarginOverrideCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)

	require.NotNil(t, prod.ClientPrice())
	assert.Equal(t, int64(1250), prod.ClientPrice().Cents(), "The override wins over the system default")

	require.Len(t, auditLogger.Entries, 1)
	assert.Equal(t, audit.ActionMarginChanged, auditLogger.Entries[0].Action())
	assert.Equal(t, "inherited", auditLogger.Entries[0].OldValue())
	assert.Equal(t, quarter.String(), auditLogger.Entries[0].NewValue())
}

func TestSetMarginOverrideCommandHandler_Handle_ClearingFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	prod := unresolvedProduct(t, 1000)
	quarter := pct(t, 25)
	require.NoError(t, prod.SetMarginOverride(&quarter))

	cmd, err := commands.NewSetMarginOverrideCommand(prod.ID(), nil, nil, kernel.NewUUID(), access.RoleStaff)
	require.NoError(t, err)

	defaultMargin := pct(t, 80)
	cfg := pricing.NewConfig(&defaultMargin, nil)

	productRepo := new(MockProductRepository)
	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("PricingRepository").Return(pricingRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		pricingRepo.On("GetOrderMargin", ctx, prod.OrderID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", prod.OrderID())).Once(),
		pricingRepo.On("LoadConfig", ctx).Return(cfg, nil).Once(),
		productRepo.On("Update", ctx, prod).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewSetMarginOverrideCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, prod.MarginOverride())
	require.NotNil(t, prod.ClientPrice())
	assert.Equal(t, int64(1800), prod.ClientPrice().Cents())

	require.Len(t, auditLogger.Entries, 1)
	assert.Equal(t, quarter.String(), auditLogger.Entries[0].OldValue())
	assert.Equal(t, "inherited", auditLogger.Entries[0].NewValue())
}
