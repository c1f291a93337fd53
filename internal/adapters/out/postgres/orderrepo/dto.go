// Package orderrepo persists the order aggregate. It maps between the domain
// model and the relational row, keeping the status column under
// compare-and-set control.
package orderrepo

import (
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"uniqueIndex"`
	Status          int       `gorm:"index"`
	ClientID        uuid.UUID `gorm:"type:uuid;index"`
	ManufacturerID  uuid.UUID `gorm:"type:uuid;index"`
	SampleRequired  bool
	SampleRoutedTo  int
	SampleFeeCents  *int64
	SampleFeePaid   bool
	SampleApproved  bool
	SampleInvoiceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	DeletedAt       *time.Time `gorm:"index"`
}

// TableName overrides GORM's default to "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var sampleFeeCents *int64
	if fee := aggregate.SampleFee(); fee != nil {
		cents := fee.Cents()
		sampleFeeCents = &cents
	}

	var sampleInvoiceID *uuid.UUID
	if id := aggregate.SampleInvoiceID(); id != nil {
		raw := id.Bytes()
		sampleInvoiceID = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Number:          aggregate.Number().String(),
		Status:          int(aggregate.Status()),
		ClientID:        aggregate.ClientID().Bytes(),
		ManufacturerID:  aggregate.ManufacturerID().Bytes(),
		SampleRequired:  aggregate.SampleRequired(),
		SampleRoutedTo:  int(aggregate.SampleRoutedTo()),
		SampleFeeCents:  sampleFeeCents,
		SampleFeePaid:   aggregate.SampleFeePaid(),
		SampleApproved:  aggregate.SampleApproved(),
		SampleInvoiceID: sampleInvoiceID,
		CreatedAt:       aggregate.CreatedAt(),
		DeletedAt:       aggregate.DeletedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	manufacturerID, err := kernel.UUIDFromBytes(dto.ManufacturerID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.NumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	var sampleFee *kernel.Money
	if dto.SampleFeeCents != nil {
		fee, feeErr := kernel.NewMoneyFromCents(*dto.SampleFeeCents)
		if feeErr != nil {
			return nil, feeErr
		}
		sampleFee = &fee
	}

	var sampleInvoiceID *kernel.UUID
	if dto.SampleInvoiceID != nil {
		invoiceID, invErr := kernel.UUIDFromBytes((*dto.SampleInvoiceID)[:])
		if invErr != nil {
			return nil, invErr
		}
		sampleInvoiceID = &invoiceID
	}

	return order.RestoreOrder(
		id,
		number,
		order.Status(dto.Status),
		clientID,
		manufacturerID,
		dto.SampleRequired,
		product.Audience(dto.SampleRoutedTo),
		sampleFee,
		dto.SampleFeePaid,
		dto.SampleApproved,
		sampleInvoiceID,
		dto.CreatedAt,
		dto.DeletedAt,
	)
}
