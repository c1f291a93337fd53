package billingrepo

import (
	"context"
	"errors"

	"factoryorders/internal/core/domain/model/billing"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBillingRepository implements BillingRepository using GORM.
type GormBillingRepository struct {
	db *gorm.DB
}

// NewGormBillingRepository creates a new GORM billing repository.
func NewGormBillingRepository(db *gorm.DB) *GormBillingRepository {
	return &GormBillingRepository{db: db}
}

// AddInvoice persists a new invoice.
func (r *GormBillingRepository) AddInvoice(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	dto := fromDomain(invoice)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateInvoice persists changes to an existing invoice.
func (r *GormBillingRepository) UpdateInvoice(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	dto := fromDomain(invoice)
	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", invoice.ID().String())
	}

	return nil
}

// GetInvoice retrieves an invoice by ID.
func (r *GormBillingRepository) GetInvoice(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetInvoicesByOrder retrieves the invoices issued against an order.
func (r *GormBillingRepository) GetInvoicesByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*billing.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []InvoiceDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	invoices := make([]*billing.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		invoice, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, nil
}

// AddInvoiceItem persists a new invoice line.
func (r *GormBillingRepository) AddInvoiceItem(ctx context.Context, item *billing.InvoiceItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}
