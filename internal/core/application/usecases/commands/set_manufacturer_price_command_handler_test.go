package commands_test

import (
	"context"
	"testing"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cents(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromCents(amount)
	require.NoError(t, err)
	return m
}

func pct(t *testing.T, value float64) kernel.Percent {
	t.Helper()
	p, err := kernel.NewPercent(value)
	require.NoError(t, err)
	return p
}

func unpricedProduct(t *testing.T) *product.OrderProduct {
	t.Helper()
	p, err := product.NewOrderProduct(kernel.NewUUID(), kernel.NewUUID(), "steel hinge")
	require.NoError(t, err)
	return p
}

func priceCommand(t *testing.T, productID kernel.UUID, amount int64) commands.SetManufacturerPriceCommand {
	t.Helper()
	cmd, err := commands.NewSetManufacturerPriceCommand(
		productID, cents(t, amount), nil, kernel.NewUUID(), access.RoleManufacturer,
	)
	require.NoError(t, err)
	return cmd
}

func TestSetManufacturerPriceCommandHandler_Handle_ResolvesClientPrice(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	cmd := priceCommand(t, prod.ID(), 1000) // $10.00

	defaultMargin := pct(t, 80)
	cfg := pricing.NewConfig(&defaultMargin, nil)

	productRepo := new(MockProductRepository)
	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		uow.On("PricingRepository").Return(pricingRepo).Once(),
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

	h := commands.NewSetManufacturerPriceCommandHandler(factory, auditLogger)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)

	require.NotNil(t, prod.ManufacturerPrice())
	assert.Equal(t, int64(1000), prod.ManufacturerPrice().Cents())
	require.NotNil(t, prod.ClientPrice())
	assert.Equal(t, int64(1800), prod.ClientPrice().Cents()) // $10.00 + 80%

	assert.Equal(t,
		[]audit.ActionType{audit.ActionProductPriced, audit.ActionPriceResolved},
		auditLogger.Actions())
}

func TestSetManufacturerPriceCommandHandler_Handle_ConfigMissingStillCommits(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	cmd := priceCommand(t, prod.ID(), 1000)

	productRepo := new(MockProductRepository)
	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		uow.On("PricingRepository").Return(pricingRepo).Once(),
		pricingRepo.On("GetOrderMargin", ctx, prod.OrderID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", prod.OrderID())).Once(),
		pricingRepo.On("LoadConfig", ctx).Return(pricing.NewConfig(nil, nil), nil).Once(),
		productRepo.On("Update", ctx, prod).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewSetManufacturerPriceCommandHandler(factory, auditLogger)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err, "Missing configuration must not block the price write")
	uow.AssertExpectations(t)

	require.NotNil(t, prod.ManufacturerPrice())
	assert.Nil(t, prod.ClientPrice(), "Client price stays unresolved until the repair batch")
	assert.Equal(t, []audit.ActionType{audit.ActionProductPriced}, auditLogger.Actions(),
		"No resolution audit when nothing resolved")
}

func TestSetManufacturerPriceCommandHandler_Handle_OrderMarginWins(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	cmd := priceCommand(t, prod.ID(), 1000)

	orderMargin, err := pricing.NewOrderMargin(prod.OrderID())
	require.NoError(t, err)
	fifty := pct(t, 50)
	orderMargin.SetMarginPercentage(&fifty)

	defaultMargin := pct(t, 80)
	cfg := pricing.NewConfig(&defaultMargin, nil)

	productRepo := new(MockProductRepository)
	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, prod.ID()).Return(prod, nil).Once(),
		uow.On("PricingRepository").Return(pricingRepo).Once(),
		pricingRepo.On("GetOrderMargin", ctx, prod.OrderID()).Return(orderMargin, nil).Once(),
		pricingRepo.On("LoadConfig", ctx).Return(cfg, nil).Once(),
		productRepo.On("Update", ctx, prod).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetManufacturerPriceCommandHandler(factory, new(RecordingAuditLogger))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, prod.ClientPrice())
	assert.Equal(t, int64(1500), prod.ClientPrice().Cents()) // $10.00 + 50%
}

func TestSetManufacturerPriceCommandHandler_Handle_LockedProduct(t *testing.T) {
	ctx := context.Background()
	prod := unpricedProduct(t)
	require.NoError(t, prod.Lock())
	cmd := priceCommand(t, prod.ID(), 1000)

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

	h := commands.NewSetManufacturerPriceCommandHandler(factory, new(RecordingAuditLogger))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	var locked *errs.LockedError
	assert.ErrorAs(t, err, &locked)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewSetManufacturerPriceCommand_PermissionCheck(t *testing.T) {
	_, err := commands.NewSetManufacturerPriceCommand(
		kernel.NewUUID(), cents(t, 1000), nil, kernel.NewUUID(), access.RoleClient,
	)

	require.Error(t, err)
	var precondition *errs.PreconditionFailedError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, errs.ReasonPermissionDenied, precondition.Reason)
}
