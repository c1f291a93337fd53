package ports

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, excluding
	// its status. Status moves only through UpdateStatus.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists a status transition with compare-and-set
	// semantics: the row is written only if its stored status still equals
	// expectedCurrent. A stale row yields a PreconditionFailedError with
	// ReasonStaleState, so at most one concurrent transition wins.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expectedCurrent order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Soft-deleted orders are returned; callers check IsDeleted.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetExpiredDrafts retrieves orders still in Draft status created before
	// the cutoff. Used by the cascade sweep.
	GetExpiredDrafts(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// NextNumberSequence reserves and returns the next order-number sequence
	// value.
	NextNumberSequence(ctx context.Context) (int64, error)
}
