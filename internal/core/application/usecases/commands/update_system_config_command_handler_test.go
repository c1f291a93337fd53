package commands_test

import (
	"context"
	"testing"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSystemConfigCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	newValue := pct(t, 90)
	cmd, err := commands.NewUpdateSystemConfigCommand(
		pricing.ConfigKeyDefaultMargin, newValue, kernel.NewUUID(), access.RoleAdmin,
	)
	require.NoError(t, err)

	oldValue := pct(t, 80)
	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PricingRepository").Return(pricingRepo)
	pricingRepo.On("LoadConfig", ctx).Return(pricing.NewConfig(&oldValue, nil), nil).Once()
	pricingRepo.On("SetDefault", ctx, pricing.ConfigKeyDefaultMargin, newValue).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewUpdateSystemConfigCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	pricingRepo.AssertExpectations(t)

	require.Len(t, auditLogger.Entries, 1)
	assert.Equal(t, audit.ActionSystemConfigChanged, auditLogger.Entries[0].Action())
	assert.Equal(t, pricing.ConfigKeyDefaultMargin, auditLogger.Entries[0].TargetID())
	assert.Equal(t, oldValue.String(), auditLogger.Entries[0].OldValue())
	assert.Equal(t, newValue.String(), auditLogger.Entries[0].NewValue())
}

func TestUpdateSystemConfigCommandHandler_Handle_FirstValueAuditsUnset(t *testing.T) {
	ctx := context.Background()
	newValue := pct(t, 20)
	cmd, err := commands.NewUpdateSystemConfigCommand(
		pricing.ConfigKeyDefaultShippingMargin, newValue, kernel.NewUUID(), access.RoleAdmin,
	)
	require.NoError(t, err)

	pricingRepo := new(MockPricingRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PricingRepository").Return(pricingRepo)
	pricingRepo.On("LoadConfig", ctx).Return(pricing.NewConfig(nil, nil), nil).Once()
	pricingRepo.On("SetDefault", ctx, pricing.ConfigKeyDefaultShippingMargin, newValue).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	auditLogger := new(RecordingAuditLogger)

	h := commands.NewUpdateSystemConfigCommandHandler(factory, auditLogger)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, auditLogger.Entries, 1)
	assert.Equal(t, "unset", auditLogger.Entries[0].OldValue())
}

func TestNewUpdateSystemConfigCommand_RejectsUnknownKey(t *testing.T) {
	_, err := commands.NewUpdateSystemConfigCommand(
		"margin.typo", pct(t, 10), kernel.NewUUID(), access.RoleAdmin,
	)

	require.Error(t, err)
}
