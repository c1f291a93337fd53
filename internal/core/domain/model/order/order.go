package order

import (
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsDeleted is returned when a mutation is attempted on a
	// soft-deleted order.
	ErrOrderIsDeleted = errors.New("order is soft-deleted")
)

// Order is the aggregate root for a factory purchase order. It connects a
// client with a manufacturer and carries the lifecycle status, sample-request
// state, and soft-delete marker.
//
// Order follows these invariants:
//   - Status is mutated only through TransitionTo, which enforces the
//     successor table and role rules
//   - Margin fields live on the owned products and the order's margin record,
//     mutated only through margin resolution
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id             kernel.UUID
	number         Number
	status         Status
	clientID       kernel.UUID
	manufacturerID kernel.UUID

	sampleRequired  bool
	sampleRoutedTo  product.Audience
	sampleFee       *kernel.Money
	sampleFeePaid   bool
	sampleApproved  bool
	sampleInvoiceID *kernel.UUID

	createdAt time.Time
	deletedAt *time.Time

	isConstructed bool
}

// NewOrder creates a new order in Draft status.
func NewOrder(
	id kernel.UUID,
	number Number,
	clientID kernel.UUID,
	manufacturerID kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:         Draft,
		sampleRoutedTo: product.AudienceUnset,
		createdAt:      createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setClientID(clientID),
		o.setManufacturerID(manufacturerID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, bypassing the Draft
// default but still validating every field.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	status Status,
	clientID kernel.UUID,
	manufacturerID kernel.UUID,
	sampleRequired bool,
	sampleRoutedTo product.Audience,
	sampleFee *kernel.Money,
	sampleFeePaid bool,
	sampleApproved bool,
	sampleInvoiceID *kernel.UUID,
	createdAt time.Time,
	deletedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, clientID, manufacturerID, createdAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), sampleRoutedTo.Validate()); err != nil {
		return nil, err
	}

	o.status = status
	o.sampleRequired = sampleRequired
	o.sampleRoutedTo = sampleRoutedTo
	o.sampleFee = sampleFee
	o.sampleFeePaid = sampleFeePaid
	o.sampleApproved = sampleApproved
	o.sampleInvoiceID = sampleInvoiceID
	o.deletedAt = deletedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() Number {
	return o.number
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// ClientID returns the purchasing client's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ManufacturerID returns the producing factory's identifier.
func (o *Order) ManufacturerID() kernel.UUID {
	return o.manufacturerID
}

// SampleRequired reports whether a pre-production sample was requested.
func (o *Order) SampleRequired() bool {
	return o.sampleRequired
}

// SampleRoutedTo returns the audience currently handling the sample request.
func (o *Order) SampleRoutedTo() product.Audience {
	return o.sampleRoutedTo
}

// SampleFee returns the sample fee, nil when no fee applies.
func (o *Order) SampleFee() *kernel.Money {
	return o.sampleFee
}

// SampleFeePaid reports whether the sample-fee invoice has been paid.
func (o *Order) SampleFeePaid() bool {
	return o.sampleFeePaid
}

// SampleApproved reports whether the sample has been approved.
func (o *Order) SampleApproved() bool {
	return o.sampleApproved
}

// SampleInvoiceID returns the designated sample-fee invoice, nil when none
// has been issued.
func (o *Order) SampleInvoiceID() *kernel.UUID {
	return o.sampleInvoiceID
}

// CreatedAt returns when the order was initiated.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsDeleted reports whether the order is soft-deleted.
func (o *Order) IsDeleted() bool {
	return o.deletedAt != nil
}

// DeletedAt returns when the order was soft-deleted, nil if it is live.
func (o *Order) DeletedAt() *time.Time {
	return o.deletedAt
}

// TransitionTo moves the order to the requested status on behalf of the
// acting role.
//
// The transition must be a direct successor of the current status (or
// Rejected from any non-terminal state) and the role must be allowed to
// drive it. On failure the order is left unchanged and a
// PreconditionFailedError identifies which guard refused. The pricing
// completeness guard lives with the command handler because it needs the
// order's products.
func (o *Order) TransitionTo(requested Status, role access.Role) error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}

	newStatus, err := o.status.TransitionTo(requested, role)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// RequestSample marks the order as needing a pre-production sample with the
// given fee. A nil fee means the sample is free of charge.
func (o *Order) RequestSample(fee *kernel.Money) error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}

	o.sampleRequired = true
	o.sampleFee = fee
	return nil
}

// RouteSampleTo assigns the sample request to an audience.
func (o *Order) RouteSampleTo(audience product.Audience) error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}
	if err := audience.Validate(); err != nil {
		return err
	}

	o.sampleRoutedTo = audience
	return nil
}

// AttachSampleInvoice designates the invoice that carries the sample fee.
func (o *Order) AttachSampleInvoice(invoiceID kernel.UUID) error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}
	if err := invoiceID.Validate(); err != nil {
		return err
	}

	o.sampleInvoiceID = &invoiceID
	return nil
}

// MarkSampleFeePaid records that the designated sample-fee invoice was paid.
// Idempotent: marking an already paid fee succeeds.
func (o *Order) MarkSampleFeePaid() error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}
	if !o.sampleRequired {
		return errs.NewPreconditionFailedError(
			errs.ReasonStateNotReachable,
			"order has no sample request",
		)
	}

	o.sampleFeePaid = true
	return nil
}

// ApproveSample records the sample approval.
func (o *Order) ApproveSample() error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}
	if !o.sampleRequired {
		return errs.NewPreconditionFailedError(
			errs.ReasonStateNotReachable,
			"order has no sample request",
		)
	}

	o.sampleApproved = true
	return nil
}

// SoftDelete marks the order as removed while keeping the row for audit.
// Idempotent.
func (o *Order) SoftDelete(at time.Time) {
	if o.deletedAt == nil {
		o.deletedAt = &at
	}
}

// IsExpiredDraft reports whether the order is a draft older than the given
// retention window and therefore eligible for the cascade sweep.
func (o *Order) IsExpiredDraft(now time.Time, retention time.Duration) bool {
	return o.status == Draft && now.Sub(o.createdAt) > retention
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setManufacturerID(manufacturerID kernel.UUID) error {
	if err := manufacturerID.Validate(); err != nil {
		return err
	}
	o.manufacturerID = manufacturerID
	return nil
}
