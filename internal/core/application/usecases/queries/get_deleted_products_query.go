package queries

import (
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/guard"
)

var ErrGetDeletedProductsQueryIsNotConstructed = errors.New(
	"GetDeletedProductsQuery must be created via NewGetDeletedProductsQuery constructor",
)

// GetDeletedProductsQuery retrieves the soft-deleted products of one order,
// with who removed each one, when, and why.
type GetDeletedProductsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeletedProductsQuery creates a deleted-products report query.
func NewGetDeletedProductsQuery(orderID kernel.UUID) (GetDeletedProductsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeletedProductsQuery{}, err
	}

	return GetDeletedProductsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeletedProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeletedProductsQueryIsNotConstructed)
}

// OrderID returns the order whose deleted products are reported.
func (q GetDeletedProductsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetDeletedProductsQueryResponse is one deleted product row.
type GetDeletedProductsQueryResponse struct {
	ProductID kernel.UUID
	Name      string
	DeletedAt time.Time
	DeletedBy kernel.UUID
	Reason    string
}
