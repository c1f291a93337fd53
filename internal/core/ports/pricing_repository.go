package ports

import (
	"context"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
)

// PricingRepository defines the persistence contract for order margin records
// and the system-wide margin configuration.
type PricingRepository interface {
	// GetOrderMargin retrieves the order's margin record.
	// Returns an ObjectNotFoundError when the order has none yet.
	GetOrderMargin(ctx context.Context, orderID kernel.UUID) (*pricing.OrderMargin, error)

	// SaveOrderMargin inserts or updates the order's margin record.
	SaveOrderMargin(ctx context.Context, margin *pricing.OrderMargin) error

	// LoadConfig reads the system margin defaults into an immutable
	// snapshot. Absent keys stay nil in the snapshot; the resolver turns
	// them into ConfigurationMissingError only when actually needed.
	LoadConfig(ctx context.Context) (pricing.Config, error)

	// SeedDefaults writes the given defaults for any key that is absent.
	// Present keys are left untouched; seeding is idempotent.
	SeedDefaults(ctx context.Context, margin, shippingMargin kernel.Percent) error

	// SetDefault writes one configuration key unconditionally.
	SetDefault(ctx context.Context, key string, value kernel.Percent) error
}
