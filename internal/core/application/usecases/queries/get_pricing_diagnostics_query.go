package queries

import (
	"errors"

	"factoryorders/internal/pkg/guard"
)

var ErrGetPricingDiagnosticsQueryIsNotConstructed = errors.New(
	"GetPricingDiagnosticsQuery must be created via NewGetPricingDiagnosticsQuery constructor",
)

// GetPricingDiagnosticsQuery summarizes the health of the pricing pipeline:
// how many products are stuck without a client price, how many are locked,
// and whether the system margin defaults are configured.
type GetPricingDiagnosticsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPricingDiagnosticsQuery creates a pricing diagnostics query.
func NewGetPricingDiagnosticsQuery() GetPricingDiagnosticsQuery {
	return GetPricingDiagnosticsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPricingDiagnosticsQuery) Validate() error {
	return q.guard.Validate(ErrGetPricingDiagnosticsQueryIsNotConstructed)
}

// GetPricingDiagnosticsQueryResponse is the pricing health summary.
type GetPricingDiagnosticsQueryResponse struct {
	UnpricedProducts         int
	LockedProducts           int
	DefaultMargin            *float64
	DefaultShippingMargin    *float64
	ConfiguredDefaultsMissed []string
}
