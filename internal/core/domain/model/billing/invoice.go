// Package billing provides the invoice entities attached to factory orders.
// Payment matching happens outside the core: webhooks are resolved to an
// invoice identity by the collaborator, and the core only records the result.
package billing

import (
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice instance was not
	// created through NewInvoice or RestoreInvoice.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

	// ErrInvoiceItemIsNotConstructed is returned when an InvoiceItem instance
	// was not created through NewInvoiceItem.
	ErrInvoiceItemIsNotConstructed = errors.New("InvoiceItem must be created via NewInvoiceItem constructor")
)

// Invoice is a bill issued against an order. An order may designate one of
// its invoices as the sample-fee invoice; paying that one also marks the
// order's sample fee as paid.
type Invoice struct {
	id      kernel.UUID
	orderID kernel.UUID
	amount  kernel.Money

	paid        bool
	paidAmount  *kernel.Money
	externalRef string
	paidAt      *time.Time

	createdAt time.Time

	isConstructed bool
}

// NewInvoice creates an unpaid invoice for an order.
func NewInvoice(id kernel.UUID, orderID kernel.UUID, amount kernel.Money, createdAt time.Time) (*Invoice, error) {
	inv := &Invoice{
		amount:        amount,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInvoice reconstructs an invoice from persistence.
func RestoreInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	paid bool,
	paidAmount *kernel.Money,
	externalRef string,
	paidAt *time.Time,
	createdAt time.Time,
) (*Invoice, error) {
	inv, err := NewInvoice(id, orderID, amount, createdAt)
	if err != nil {
		return nil, err
	}

	inv.paid = paid
	inv.paidAmount = paidAmount
	inv.externalRef = externalRef
	inv.paidAt = paidAt

	return inv, nil
}

// Validate ensures the invoice was created through a constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// OrderID returns the billed order's identifier.
func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

// Amount returns the billed amount.
func (i *Invoice) Amount() kernel.Money {
	return i.amount
}

// IsPaid reports whether the invoice has been paid.
func (i *Invoice) IsPaid() bool {
	return i.paid
}

// PaidAmount returns the amount actually received, nil while unpaid.
func (i *Invoice) PaidAmount() *kernel.Money {
	return i.paidAmount
}

// ExternalRef returns the payment gateway's reference for the payment.
func (i *Invoice) ExternalRef() string {
	return i.externalRef
}

// PaidAt returns when the payment was recorded, nil while unpaid.
func (i *Invoice) PaidAt() *time.Time {
	return i.paidAt
}

// CreatedAt returns when the invoice was issued.
func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

// MarkPaid records an already-resolved payment against the invoice.
// Recording the same payment again is a no-op so webhook retries stay
// idempotent; a second payment with a different reference is refused.
func (i *Invoice) MarkPaid(amount kernel.Money, externalRef string, at time.Time) error {
	if externalRef == "" {
		return errs.NewValueIsRequiredError("external payment reference")
	}
	if i.paid {
		if i.externalRef == externalRef {
			return nil
		}
		return errs.NewPreconditionFailedError(
			errs.ReasonStateNotReachable,
			"invoice is already paid under a different reference",
		)
	}

	i.paid = true
	i.paidAmount = &amount
	i.externalRef = externalRef
	i.paidAt = &at
	return nil
}

func (i *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

// InvoiceItem is one billed line of an invoice.
type InvoiceItem struct {
	id          kernel.UUID
	invoiceID   kernel.UUID
	description string
	amount      kernel.Money
	quantity    int

	isConstructed bool
}

// NewInvoiceItem creates a billed line. Quantity must be positive.
func NewInvoiceItem(
	id kernel.UUID,
	invoiceID kernel.UUID,
	description string,
	amount kernel.Money,
	quantity int,
) (*InvoiceItem, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate()); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("invoice item description")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("invoice item quantity", quantity, 1, int(^uint(0)>>1))
	}

	return &InvoiceItem{
		id:            id,
		invoiceID:     invoiceID,
		description:   description,
		amount:        amount,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// Validate ensures the item was created through the constructor.
func (ii *InvoiceItem) Validate() error {
	if ii == nil || !ii.isConstructed {
		return ErrInvoiceItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (ii *InvoiceItem) ID() kernel.UUID {
	return ii.id
}

// InvoiceID returns the owning invoice's identifier.
func (ii *InvoiceItem) InvoiceID() kernel.UUID {
	return ii.invoiceID
}

// Description returns the billed line description.
func (ii *InvoiceItem) Description() string {
	return ii.description
}

// Amount returns the per-unit amount.
func (ii *InvoiceItem) Amount() kernel.Money {
	return ii.amount
}

// Quantity returns the billed quantity.
func (ii *InvoiceItem) Quantity() int {
	return ii.quantity
}
