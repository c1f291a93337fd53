// Package pricingrepo persists order margin records and the system margin
// configuration table.
package pricingrepo

import (
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"

	"github.com/google/uuid"
)

// OrderMarginDTO is the database row for an order's margin record, keyed 1:1
// by order.
type OrderMarginDTO struct {
	OrderID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	MarginPercentage         *float64
	ShippingMarginPercentage *float64
}

// TableName overrides GORM's default to "order_margins".
func (OrderMarginDTO) TableName() string {
	return "order_margins"
}

// SystemConfigDTO is one system configuration row.
type SystemConfigDTO struct {
	Key   string `gorm:"primaryKey"`
	Value float64
}

// TableName overrides GORM's default to "system_configs".
func (SystemConfigDTO) TableName() string {
	return "system_configs"
}

func marginFromDomain(margin *pricing.OrderMargin) OrderMarginDTO {
	dto := OrderMarginDTO{OrderID: margin.OrderID().Bytes()}

	if pct := margin.MarginPercentage(); pct != nil {
		v := pct.Value()
		dto.MarginPercentage = &v
	}
	if pct := margin.ShippingMarginPercentage(); pct != nil {
		v := pct.Value()
		dto.ShippingMarginPercentage = &v
	}

	return dto
}

func marginToDomain(dto OrderMarginDTO) (*pricing.OrderMargin, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	marginPct, err := optionalPercent(dto.MarginPercentage)
	if err != nil {
		return nil, err
	}
	shippingPct, err := optionalPercent(dto.ShippingMarginPercentage)
	if err != nil {
		return nil, err
	}

	return pricing.RestoreOrderMargin(orderID, marginPct, shippingPct)
}

func optionalPercent(v *float64) (*kernel.Percent, error) {
	if v == nil {
		return nil, nil
	}
	pct, err := kernel.NewPercent(*v)
	if err != nil {
		return nil, err
	}
	return &pct, nil
}
