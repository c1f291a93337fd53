package ports

import (
	"context"

	"factoryorders/internal/core/domain/model/billing"
	"factoryorders/internal/core/domain/model/kernel"
)

// BillingRepository defines the persistence contract for invoices and their
// items.
type BillingRepository interface {
	// AddInvoice persists a new invoice.
	AddInvoice(ctx context.Context, invoice *billing.Invoice) error

	// UpdateInvoice persists changes to an existing invoice.
	UpdateInvoice(ctx context.Context, invoice *billing.Invoice) error

	// GetInvoice retrieves an invoice by its unique identifier.
	GetInvoice(ctx context.Context, id kernel.UUID) (*billing.Invoice, error)

	// GetInvoicesByOrder retrieves the invoices issued against an order.
	GetInvoicesByOrder(ctx context.Context, orderID kernel.UUID) ([]*billing.Invoice, error)

	// AddInvoiceItem persists a new invoice line.
	AddInvoiceItem(ctx context.Context, item *billing.InvoiceItem) error
}
