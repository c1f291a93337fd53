// Package billingrepo persists invoices and their lines.
package billingrepo

import (
	"time"

	"factoryorders/internal/core/domain/model/billing"
	"factoryorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO is the database row for an invoice.
type InvoiceDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	AmountCents     int64
	Paid            bool
	PaidAmountCents *int64
	ExternalRef     string `gorm:"index"`
	PaidAt          *time.Time
	CreatedAt       time.Time
}

// TableName overrides GORM's default to "invoices".
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceItemDTO is the database row for one invoice line.
type InvoiceItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;index"`
	Description string
	AmountCents int64
	Quantity    int
}

// TableName overrides GORM's default to "invoice_items".
func (InvoiceItemDTO) TableName() string {
	return "invoice_items"
}

func fromDomain(invoice *billing.Invoice) InvoiceDTO {
	var paidAmountCents *int64
	if paid := invoice.PaidAmount(); paid != nil {
		cents := paid.Cents()
		paidAmountCents = &cents
	}

	return InvoiceDTO{
		ID:              invoice.ID().Bytes(),
		OrderID:         invoice.OrderID().Bytes(),
		AmountCents:     invoice.Amount().Cents(),
		Paid:            invoice.IsPaid(),
		PaidAmountCents: paidAmountCents,
		ExternalRef:     invoice.ExternalRef(),
		PaidAt:          invoice.PaidAt(),
		CreatedAt:       invoice.CreatedAt(),
	}
}

func toDomain(dto InvoiceDTO) (*billing.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromCents(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	var paidAmount *kernel.Money
	if dto.PaidAmountCents != nil {
		paid, paidErr := kernel.NewMoneyFromCents(*dto.PaidAmountCents)
		if paidErr != nil {
			return nil, paidErr
		}
		paidAmount = &paid
	}

	return billing.RestoreInvoice(
		id,
		orderID,
		amount,
		dto.Paid,
		paidAmount,
		dto.ExternalRef,
		dto.PaidAt,
		dto.CreatedAt,
	)
}

func itemFromDomain(item *billing.InvoiceItem) InvoiceItemDTO {
	return InvoiceItemDTO{
		ID:          item.ID().Bytes(),
		InvoiceID:   item.InvoiceID().Bytes(),
		Description: item.Description(),
		AmountCents: item.Amount().Cents(),
		Quantity:    item.Quantity(),
	}
}
