package queries

import (
	"context"

	"factoryorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnpricedProductsQueryHandler reads the unpriced diagnostics feed.
type GetUnpricedProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnpricedProductsQueryHandler creates a handler for the diagnostics feed.
func NewGetUnpricedProductsQueryHandler(db *gorm.DB) GetUnpricedProductsQueryHandler {
	return GetUnpricedProductsQueryHandler{db: db}
}

// Handle executes the query. Soft-deleted products are excluded; rows are
// sorted by order so an operator sees one order's gaps together.
func (h GetUnpricedProductsQueryHandler) Handle(
	ctx context.Context,
	query GetUnpricedProductsQuery,
) ([]GetUnpricedProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]GetUnpricedProductsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			name,
			manufacturer_price_cents,
			locked
		FROM order_products
		WHERE manufacturer_price_cents IS NOT NULL
		  AND client_price_cents IS NULL
		  AND deleted_at IS NULL
		ORDER BY order_id, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, orderID uuid.UUID
		var name string
		var priceCents int64
		var locked bool

		if err = rows.Scan(&id, &orderID, &name, &priceCents, &locked); err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		price, priceErr := kernel.NewMoneyFromCents(priceCents)
		if priceErr != nil {
			return nil, priceErr
		}

		products = append(products, GetUnpricedProductsQueryResponse{
			ProductID:         productID,
			OrderID:           ownerID,
			Name:              name,
			ManufacturerPrice: price,
			Locked:            locked,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
