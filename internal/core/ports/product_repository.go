package ports

import (
	"context"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for order products and
// their items.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.OrderProduct) error

	// Update persists changes to an existing product. The client price and
	// marginApplied columns are always written together in the same row
	// update, so a concurrent reader never observes one without the other.
	Update(ctx context.Context, aggregate *product.OrderProduct) error

	// Get retrieves a product by its unique identifier, including
	// soft-deleted ones.
	Get(ctx context.Context, id kernel.UUID) (*product.OrderProduct, error)

	// GetByOrder retrieves the live (not soft-deleted) products of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*product.OrderProduct, error)

	// GetDeletedByOrder retrieves the soft-deleted products of an order for
	// the deleted-items report.
	GetDeletedByOrder(ctx context.Context, orderID kernel.UUID) ([]*product.OrderProduct, error)

	// GetManufacturerPriced retrieves every live product that carries a
	// manufacturer price, whether or not a client price has been resolved.
	// This is the work list for the margin repair batch: resolution is
	// idempotent, so already-converged rows pass through unchanged while
	// drifted ones (a changed default, a shipping default seeded after the
	// product price resolved) are caught.
	GetManufacturerPriced(ctx context.Context) ([]*product.OrderProduct, error)

	// AddItem persists a new order item under a product.
	AddItem(ctx context.Context, item *product.OrderItem) error

	// GetItem retrieves one order item by its unique identifier.
	GetItem(ctx context.Context, id kernel.UUID) (*product.OrderItem, error)

	// UpdateItem persists changes to an existing order item.
	UpdateItem(ctx context.Context, item *product.OrderItem) error

	// GetItems retrieves the items of a product.
	GetItems(ctx context.Context, productID kernel.UUID) ([]*product.OrderItem, error)
}
