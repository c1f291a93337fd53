// Package queries contains read operations that bypass the domain model.
// Query handlers read projections straight from the database; they never
// mutate state and never load aggregates.
package queries

import (
	"errors"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/guard"
)

var ErrGetUnpricedProductsQueryIsNotConstructed = errors.New(
	"GetUnpricedProductsQuery must be created via NewGetUnpricedProductsQuery constructor",
)

// GetUnpricedProductsQuery retrieves live products that carry a manufacturer
// price but no resolved client price. This is the operator's diagnostics
// feed: every row here is a product the margin hierarchy could not serve.
type GetUnpricedProductsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnpricedProductsQuery creates a query for the unpriced diagnostics feed.
func NewGetUnpricedProductsQuery() GetUnpricedProductsQuery {
	return GetUnpricedProductsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnpricedProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnpricedProductsQueryIsNotConstructed)
}

// GetUnpricedProductsQueryResponse is one unpriced product row.
type GetUnpricedProductsQueryResponse struct {
	ProductID         kernel.UUID
	OrderID           kernel.UUID
	Name              string
	ManufacturerPrice kernel.Money
	Locked            bool
}
