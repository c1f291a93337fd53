package queries

import (
	"context"

	"factoryorders/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// GetPricingDiagnosticsQueryHandler reads the pricing health summary.
type GetPricingDiagnosticsQueryHandler struct {
	db *gorm.DB
}

// NewGetPricingDiagnosticsQueryHandler creates a handler for pricing diagnostics.
func NewGetPricingDiagnosticsQueryHandler(db *gorm.DB) GetPricingDiagnosticsQueryHandler {
	return GetPricingDiagnosticsQueryHandler{db: db}
}

// Handle executes the diagnostics query.
func (h GetPricingDiagnosticsQueryHandler) Handle(
	ctx context.Context,
	query GetPricingDiagnosticsQuery,
) (GetPricingDiagnosticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPricingDiagnosticsQueryResponse{}, err
	}

	var response GetPricingDiagnosticsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE manufacturer_price_cents IS NOT NULL AND client_price_cents IS NULL),
			COUNT(*) FILTER (WHERE locked)
		FROM order_products
		WHERE deleted_at IS NULL
	`).Row()
	if err := row.Scan(&response.UnpricedProducts, &response.LockedProducts); err != nil {
		return GetPricingDiagnosticsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT key, value
		FROM system_configs
		WHERE key IN (?, ?)
	`, pricing.ConfigKeyDefaultMargin, pricing.ConfigKeyDefaultShippingMargin).Rows()
	if err != nil {
		return GetPricingDiagnosticsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value float64

		if err = rows.Scan(&key, &value); err != nil {
			return GetPricingDiagnosticsQueryResponse{}, err
		}

		switch key {
		case pricing.ConfigKeyDefaultMargin:
			v := value
			response.DefaultMargin = &v
		case pricing.ConfigKeyDefaultShippingMargin:
			v := value
			response.DefaultShippingMargin = &v
		}
	}

	if err = rows.Err(); err != nil {
		return GetPricingDiagnosticsQueryResponse{}, err
	}

	if response.DefaultMargin == nil {
		response.ConfiguredDefaultsMissed = append(response.ConfiguredDefaultsMissed, pricing.ConfigKeyDefaultMargin)
	}
	if response.DefaultShippingMargin == nil {
		response.ConfiguredDefaultsMissed = append(
			response.ConfiguredDefaultsMissed,
			pricing.ConfigKeyDefaultShippingMargin,
		)
	}

	return response, nil
}
