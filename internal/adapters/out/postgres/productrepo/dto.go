// Package productrepo persists order products and their items. The client
// price and applied margin live in the same row, so a single Updates call
// writes them atomically.
package productrepo

import (
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is the database row for an order product.
type ProductDTO struct {
	ID                             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID                        uuid.UUID `gorm:"type:uuid;index"`
	Name                           string
	ManufacturerPriceCents         *int64
	ClientPriceCents               *int64
	MarginApplied                  *float64
	MarginOverride                 *float64
	ManufacturerShippingPriceCents *int64
	ClientShippingPriceCents       *int64
	ShippingMarginApplied          *float64
	ShippingMarginOverride         *float64
	Audience                       int `gorm:"index"`
	Locked                         bool
	DeletedAt                      *time.Time `gorm:"index"`
	DeletedBy                      *uuid.UUID `gorm:"type:uuid"`
	DeletionReason                 string
}

// TableName overrides GORM's default to "order_products".
func (ProductDTO) TableName() string {
	return "order_products"
}

// ItemDTO is the database row for an order item.
type ItemDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID            uuid.UUID `gorm:"type:uuid;index"`
	Variant              string
	Quantity             int
	PriceOverrideCents   *int64
	AdminApproval        int
	ManufacturerApproval int
}

// TableName overrides GORM's default to "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

func centsFromMoney(m *kernel.Money) *int64 {
	if m == nil {
		return nil
	}
	cents := m.Cents()
	return &cents
}

func moneyFromCents(cents *int64) (*kernel.Money, error) {
	if cents == nil {
		return nil, nil
	}
	m, err := kernel.NewMoneyFromCents(*cents)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func valueFromPercent(p *kernel.Percent) *float64 {
	if p == nil {
		return nil
	}
	v := p.Value()
	return &v
}

func percentFromValue(v *float64) (*kernel.Percent, error) {
	if v == nil {
		return nil, nil
	}
	p, err := kernel.NewPercent(*v)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func fromDomain(aggregate *product.OrderProduct) ProductDTO {
	var deletedBy *uuid.UUID
	if id := aggregate.DeletedBy(); id != nil {
		raw := id.Bytes()
		deletedBy = &raw
	}

	return ProductDTO{
		ID:                             aggregate.ID().Bytes(),
		OrderID:                        aggregate.OrderID().Bytes(),
		Name:                           aggregate.Name(),
		ManufacturerPriceCents:         centsFromMoney(aggregate.ManufacturerPrice()),
		ClientPriceCents:               centsFromMoney(aggregate.ClientPrice()),
		MarginApplied:                  valueFromPercent(aggregate.MarginApplied()),
		MarginOverride:                 valueFromPercent(aggregate.MarginOverride()),
		ManufacturerShippingPriceCents: centsFromMoney(aggregate.ManufacturerShippingPrice()),
		ClientShippingPriceCents:       centsFromMoney(aggregate.ClientShippingPrice()),
		ShippingMarginApplied:          valueFromPercent(aggregate.ShippingMarginApplied()),
		ShippingMarginOverride:         valueFromPercent(aggregate.ShippingMarginOverride()),
		Audience:                       int(aggregate.Audience()),
		Locked:                         aggregate.IsLocked(),
		DeletedAt:                      aggregate.DeletedAt(),
		DeletedBy:                      deletedBy,
		DeletionReason:                 aggregate.DeletionReason(),
	}
}

func toDomain(dto ProductDTO) (*product.OrderProduct, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	manufacturerPrice, err := moneyFromCents(dto.ManufacturerPriceCents)
	if err != nil {
		return nil, err
	}
	clientPrice, err := moneyFromCents(dto.ClientPriceCents)
	if err != nil {
		return nil, err
	}
	marginApplied, err := percentFromValue(dto.MarginApplied)
	if err != nil {
		return nil, err
	}
	marginOverride, err := percentFromValue(dto.MarginOverride)
	if err != nil {
		return nil, err
	}
	manufacturerShipping, err := moneyFromCents(dto.ManufacturerShippingPriceCents)
	if err != nil {
		return nil, err
	}
	clientShipping, err := moneyFromCents(dto.ClientShippingPriceCents)
	if err != nil {
		return nil, err
	}
	shippingMarginApplied, err := percentFromValue(dto.ShippingMarginApplied)
	if err != nil {
		return nil, err
	}
	shippingMarginOverride, err := percentFromValue(dto.ShippingMarginOverride)
	if err != nil {
		return nil, err
	}

	var deletedBy *kernel.UUID
	if dto.DeletedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.DeletedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		deletedBy = &by
	}

	return product.RestoreOrderProduct(
		id,
		orderID,
		dto.Name,
		manufacturerPrice,
		clientPrice,
		marginApplied,
		marginOverride,
		manufacturerShipping,
		clientShipping,
		shippingMarginApplied,
		shippingMarginOverride,
		product.Audience(dto.Audience),
		dto.Locked,
		dto.DeletedAt,
		deletedBy,
		dto.DeletionReason,
	)
}

func itemFromDomain(item *product.OrderItem) ItemDTO {
	return ItemDTO{
		ID:                   item.ID().Bytes(),
		ProductID:            item.ProductID().Bytes(),
		Variant:              item.Variant(),
		Quantity:             item.Quantity(),
		PriceOverrideCents:   centsFromMoney(item.PriceOverride()),
		AdminApproval:        int(item.AdminApproval()),
		ManufacturerApproval: int(item.ManufacturerApproval()),
	}
}

func itemToDomain(dto ItemDTO) (*product.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	priceOverride, err := moneyFromCents(dto.PriceOverrideCents)
	if err != nil {
		return nil, err
	}

	return product.RestoreOrderItem(
		id,
		productID,
		dto.Variant,
		dto.Quantity,
		priceOverride,
		product.Approval(dto.AdminApproval),
		product.Approval(dto.ManufacturerApproval),
	)
}
