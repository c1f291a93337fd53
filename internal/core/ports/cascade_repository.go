package ports

import (
	"context"

	"factoryorders/internal/core/domain/model/kernel"
)

// CascadeRepository executes the hard-delete cascade for one order: every
// dependent row child-first, inside the surrounding transaction, following an
// explicit ordered step list in the adapter. Steps marked optional tolerate a
// missing table (some dependent record kinds are deployment-optional).
//
// Audit entries are intentionally not part of the cascade; they outlive
// their targets.
type CascadeRepository interface {
	// PurgeOrder removes the order row and all dependent rows.
	// Purging an order that no longer exists succeeds, keeping sweep
	// re-runs idempotent.
	PurgeOrder(ctx context.Context, orderID kernel.UUID) error
}
