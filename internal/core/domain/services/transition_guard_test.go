package services_test

import (
	"testing"
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/core/domain/services"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routedProduct(t *testing.T, audience product.Audience) *product.OrderProduct {
	t.Helper()
	p, err := product.NewOrderProduct(kernel.NewUUID(), kernel.NewUUID(), "aluminum plate")
	require.NoError(t, err)
	if audience != product.AudienceUnset {
		require.NoError(t, p.RouteTo(audience))
	}
	return p
}

func requireUnresolvedPricing(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var precondition *errs.PreconditionFailedError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, errs.ReasonUnresolvedPricing, precondition.Reason)
}

func TestTransitionGuard_CheckPricingComplete(t *testing.T) {
	guard := services.NewTransitionGuard()

	t.Run("should pass transitions without a pricing precondition", func(t *testing.T) {
		unpriced := routedProduct(t, product.AudienceManufacturer)

		for _, status := range []order.Status{
			order.SubmittedToManufacturer,
			order.SubmittedToClient,
			order.ReadyForProduction,
			order.InProduction,
			order.Completed,
			order.Rejected,
		} {
			assert.NoError(t, guard.CheckPricingComplete(status, []*product.OrderProduct{unpriced}), status.String())
		}
	})

	t.Run("should require manufacturer prices for PricedByManufacturer", func(t *testing.T) {
		unpriced := routedProduct(t, product.AudienceManufacturer)

		err := guard.CheckPricingComplete(order.PricedByManufacturer, []*product.OrderProduct{unpriced})

		requireUnresolvedPricing(t, err)
	})

	t.Run("should pass PricedByManufacturer when every routed product is priced", func(t *testing.T) {
		priced := routedProduct(t, product.AudienceManufacturer)
		require.NoError(t, priced.SetManufacturerPrice(money(t, 1000)))

		err := guard.CheckPricingComplete(order.PricedByManufacturer, []*product.OrderProduct{priced})

		assert.NoError(t, err)
	})

	t.Run("should ignore products routed elsewhere", func(t *testing.T) {
		unrouted := routedProduct(t, product.AudienceUnset)

		err := guard.CheckPricingComplete(order.PricedByManufacturer, []*product.OrderProduct{unrouted})

		assert.NoError(t, err)
	})

	t.Run("should ignore soft-deleted products", func(t *testing.T) {
		deleted := routedProduct(t, product.AudienceManufacturer)
		require.NoError(t, deleted.SoftDelete(kernel.NewUUID(), "wrong spec", time.Now()))

		err := guard.CheckPricingComplete(order.PricedByManufacturer, []*product.OrderProduct{deleted})

		assert.NoError(t, err)
	})

	t.Run("should require client prices for ClientApproved", func(t *testing.T) {
		// A client-routed product can lose its resolved price when margins
		// are reconfigured, so restore one in that state directly.
		manufacturerPrice := money(t, 1000)
		unresolved, err := product.RestoreOrderProduct(
			kernel.NewUUID(), kernel.NewUUID(), "aluminum plate",
			&manufacturerPrice, nil, nil, nil,
			nil, nil, nil, nil,
			product.AudienceClient, false,
			nil, nil, "",
		)
		require.NoError(t, err)

		err = guard.CheckPricingComplete(order.ClientApproved, []*product.OrderProduct{unresolved})

		requireUnresolvedPricing(t, err)
	})

	t.Run("should pass ClientApproved once prices are resolved", func(t *testing.T) {
		p := routedProduct(t, product.AudienceManufacturer)
		require.NoError(t, p.SetManufacturerPrice(money(t, 1000)))

		resolver := services.NewMarginResolver()
		_, err := resolver.ResolveProductPrice(p, nil, configWith(t, 80, 20))
		require.NoError(t, err)
		require.NoError(t, p.RouteTo(product.AudienceClient))

		err = guard.CheckPricingComplete(order.ClientApproved, []*product.OrderProduct{p})

		assert.NoError(t, err)
	})

	t.Run("should pass on an order without products", func(t *testing.T) {
		assert.NoError(t, guard.CheckPricingComplete(order.PricedByManufacturer, nil))
	})
}
