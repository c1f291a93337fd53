package pricingrepo

import (
	"context"
	"errors"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPricingRepository implements PricingRepository using GORM.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a new GORM pricing repository.
func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// GetOrderMargin retrieves the order's margin record.
func (r *GormPricingRepository) GetOrderMargin(
	ctx context.Context,
	orderID kernel.UUID,
) (*pricing.OrderMargin, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderMarginDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order margin", orderID.String())
		}
		return nil, err
	}

	return marginToDomain(dto)
}

// SaveOrderMargin inserts or updates the order's margin record.
func (r *GormPricingRepository) SaveOrderMargin(ctx context.Context, margin *pricing.OrderMargin) error {
	if err := margin.Validate(); err != nil {
		return err
	}

	dto := marginFromDomain(margin)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// LoadConfig reads the system margin defaults into a snapshot. Absent keys
// stay nil.
func (r *GormPricingRepository) LoadConfig(ctx context.Context) (pricing.Config, error) {
	var dtos []SystemConfigDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "key IN ?", []string{
			pricing.ConfigKeyDefaultMargin,
			pricing.ConfigKeyDefaultShippingMargin,
		}).Error
	if err != nil {
		return pricing.Config{}, err
	}

	var defaultMargin, defaultShipping *kernel.Percent
	for _, dto := range dtos {
		pct, pctErr := kernel.NewPercent(dto.Value)
		if pctErr != nil {
			return pricing.Config{}, pctErr
		}
		switch dto.Key {
		case pricing.ConfigKeyDefaultMargin:
			p := pct
			defaultMargin = &p
		case pricing.ConfigKeyDefaultShippingMargin:
			p := pct
			defaultShipping = &p
		}
	}

	return pricing.NewConfig(defaultMargin, defaultShipping), nil
}

// SeedDefaults writes the given defaults for any absent key. Present keys
// keep their values, so seeding at startup never stomps operator changes.
func (r *GormPricingRepository) SeedDefaults(ctx context.Context, margin, shippingMargin kernel.Percent) error {
	dtos := []SystemConfigDTO{
		{Key: pricing.ConfigKeyDefaultMargin, Value: margin.Value()},
		{Key: pricing.ConfigKeyDefaultShippingMargin, Value: shippingMargin.Value()},
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&dtos).Error
}

// SetDefault writes one configuration key unconditionally.
func (r *GormPricingRepository) SetDefault(ctx context.Context, key string, value kernel.Percent) error {
	dto := SystemConfigDTO{Key: key, Value: value.Value()}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
