package product

import (
	"errors"
	"fmt"
	"time"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when an OrderProduct instance was
	// not created through NewOrderProduct or RestoreOrderProduct.
	ErrProductIsNotConstructed = errors.New("OrderProduct must be created via NewOrderProduct constructor")

	// ErrProductIsDeleted is returned when a mutation is attempted on a
	// soft-deleted product. Deleted products only exist for audit queries.
	ErrProductIsDeleted = errors.New("product is soft-deleted")
)

// OrderProduct is a line of a factory order. It carries the factory-facing
// price, the derived client-facing price, routing state, and soft-delete
// metadata.
//
// Invariants:
//   - If the manufacturer price is set and the product is not deleted, the
//     client price must be resolvable within one margin-resolution pass.
//   - The client price and the margin that produced it are always written
//     together, never separately.
//   - A locked product refuses manufacturer price edits.
//   - A soft-deleted product refuses every mutation.
type OrderProduct struct {
	id      kernel.UUID
	orderID kernel.UUID
	name    string

	manufacturerPrice *kernel.Money
	clientPrice       *kernel.Money
	marginApplied     *kernel.Percent
	marginOverride    *kernel.Percent

	manufacturerShippingPrice *kernel.Money
	clientShippingPrice       *kernel.Money
	shippingMarginApplied     *kernel.Percent
	shippingMarginOverride    *kernel.Percent

	audience Audience
	locked   bool

	deletedAt      *time.Time
	deletedBy      *kernel.UUID
	deletionReason string

	isConstructed bool
}

// NewOrderProduct creates a fresh, unrouted, unpriced product line for the
// given order.
func NewOrderProduct(id kernel.UUID, orderID kernel.UUID, name string) (*OrderProduct, error) {
	p := &OrderProduct{
		audience:      AudienceUnset,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setName(name),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreOrderProduct reconstructs a product from persistence, including
// pricing, routing, lock, and soft-delete state.
func RestoreOrderProduct(
	id kernel.UUID,
	orderID kernel.UUID,
	name string,
	manufacturerPrice *kernel.Money,
	clientPrice *kernel.Money,
	marginApplied *kernel.Percent,
	marginOverride *kernel.Percent,
	manufacturerShippingPrice *kernel.Money,
	clientShippingPrice *kernel.Money,
	shippingMarginApplied *kernel.Percent,
	shippingMarginOverride *kernel.Percent,
	audience Audience,
	locked bool,
	deletedAt *time.Time,
	deletedBy *kernel.UUID,
	deletionReason string,
) (*OrderProduct, error) {
	p, err := NewOrderProduct(id, orderID, name)
	if err != nil {
		return nil, err
	}

	if err = audience.Validate(); err != nil {
		return nil, err
	}

	p.manufacturerPrice = manufacturerPrice
	p.clientPrice = clientPrice
	p.marginApplied = marginApplied
	p.marginOverride = marginOverride
	p.manufacturerShippingPrice = manufacturerShippingPrice
	p.clientShippingPrice = clientShippingPrice
	p.shippingMarginApplied = shippingMarginApplied
	p.shippingMarginOverride = shippingMarginOverride
	p.audience = audience
	p.locked = locked
	p.deletedAt = deletedAt
	p.deletedBy = deletedBy
	p.deletionReason = deletionReason

	return p, nil
}

// Validate ensures the product was created through a constructor.
func (p *OrderProduct) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *OrderProduct) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the owning order.
func (p *OrderProduct) OrderID() kernel.UUID {
	return p.orderID
}

// Name returns the product's display name.
func (p *OrderProduct) Name() string {
	return p.name
}

// ManufacturerPrice returns the factory-facing price, nil until priced.
func (p *OrderProduct) ManufacturerPrice() *kernel.Money {
	return p.manufacturerPrice
}

// ClientPrice returns the derived client-facing price, nil until resolved.
func (p *OrderProduct) ClientPrice() *kernel.Money {
	return p.clientPrice
}

// MarginApplied returns the margin percentage the current client price was
// derived with, nil until resolved.
func (p *OrderProduct) MarginApplied() *kernel.Percent {
	return p.marginApplied
}

// MarginOverride returns the per-product margin override, nil when the
// product inherits the order or system margin.
func (p *OrderProduct) MarginOverride() *kernel.Percent {
	return p.marginOverride
}

// ManufacturerShippingPrice returns the factory-facing shipping price.
func (p *OrderProduct) ManufacturerShippingPrice() *kernel.Money {
	return p.manufacturerShippingPrice
}

// ClientShippingPrice returns the derived client-facing shipping price.
func (p *OrderProduct) ClientShippingPrice() *kernel.Money {
	return p.clientShippingPrice
}

// ShippingMarginApplied returns the shipping margin the current client
// shipping price was derived with.
func (p *OrderProduct) ShippingMarginApplied() *kernel.Percent {
	return p.shippingMarginApplied
}

// ShippingMarginOverride returns the per-product shipping margin override.
func (p *OrderProduct) ShippingMarginOverride() *kernel.Percent {
	return p.shippingMarginOverride
}

// Audience returns the audience currently responsible for the product.
func (p *OrderProduct) Audience() Audience {
	return p.audience
}

// IsLocked reports whether manufacturer price edits are frozen.
func (p *OrderProduct) IsLocked() bool {
	return p.locked
}

// IsDeleted reports whether the product is soft-deleted.
func (p *OrderProduct) IsDeleted() bool {
	return p.deletedAt != nil
}

// DeletedAt returns when the product was soft-deleted, nil if it is live.
func (p *OrderProduct) DeletedAt() *time.Time {
	return p.deletedAt
}

// DeletedBy returns who soft-deleted the product, nil if it is live.
func (p *OrderProduct) DeletedBy() *kernel.UUID {
	return p.deletedBy
}

// DeletionReason returns the recorded reason for the soft delete.
func (p *OrderProduct) DeletionReason() string {
	return p.deletionReason
}

// SetManufacturerPrice records the factory-facing price.
//
// Returns a LockedError when the product has been locked for pricing, and
// ErrProductIsDeleted when the product is soft-deleted. Changing the
// manufacturer price invalidates the derived client price: callers must run
// margin resolution afterwards.
func (p *OrderProduct) SetManufacturerPrice(price kernel.Money) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}
	if p.locked {
		return errs.NewLockedError("manufacturer price", p.id.String())
	}

	p.manufacturerPrice = &price
	return nil
}

// SetManufacturerShippingPrice records the factory-facing shipping price.
// Subject to the same lock and soft-delete guards as the product price.
func (p *OrderProduct) SetManufacturerShippingPrice(price kernel.Money) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}
	if p.locked {
		return errs.NewLockedError("manufacturer shipping price", p.id.String())
	}

	p.manufacturerShippingPrice = &price
	return nil
}

// SetMarginOverride sets or clears the per-product margin override.
// Pass nil to fall back to the order or system margin.
func (p *OrderProduct) SetMarginOverride(override *kernel.Percent) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}

	p.marginOverride = override
	return nil
}

// SetShippingMarginOverride sets or clears the per-product shipping margin override.
func (p *OrderProduct) SetShippingMarginOverride(override *kernel.Percent) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}

	p.shippingMarginOverride = override
	return nil
}

// ApplyResolvedPrice stores a resolved client price together with the margin
// that produced it. The pair is written atomically so drift between price and
// margin cannot occur.
func (p *OrderProduct) ApplyResolvedPrice(clientPrice kernel.Money, marginApplied kernel.Percent) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}
	if p.manufacturerPrice == nil {
		return errs.NewIntegrityError(
			fmt.Sprintf("client price resolved for unpriced product %s", p.id),
		)
	}

	p.clientPrice = &clientPrice
	p.marginApplied = &marginApplied
	return nil
}

// ApplyResolvedShipping stores a resolved client shipping price together with
// the shipping margin that produced it.
func (p *OrderProduct) ApplyResolvedShipping(clientPrice kernel.Money, marginApplied kernel.Percent) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}
	if p.manufacturerShippingPrice == nil {
		return errs.NewIntegrityError(
			fmt.Sprintf("client shipping price resolved for product %s without a shipping price", p.id),
		)
	}

	p.clientShippingPrice = &clientPrice
	p.shippingMarginApplied = &marginApplied
	return nil
}

// RouteTo assigns the product to an audience.
//
// Routing to the client requires a resolved client price; attempting it
// earlier returns a PreconditionFailedError with ReasonUnresolvedPricing.
// An unpriced product is an error, never a zero-priced one.
func (p *OrderProduct) RouteTo(audience Audience) error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}
	if err := audience.Validate(); err != nil {
		return err
	}

	if audience == AudienceClient && p.clientPrice == nil {
		return errs.NewPreconditionFailedError(
			errs.ReasonUnresolvedPricing,
			fmt.Sprintf("product %s has no resolved client price", p.id),
		)
	}

	p.audience = audience
	return nil
}

// Lock freezes manufacturer-facing price edits. Locking is advisory business
// state enforced in the write path, not a concurrency primitive.
func (p *OrderProduct) Lock() error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}

	p.locked = true
	return nil
}

// Unlock releases the pricing freeze.
func (p *OrderProduct) Unlock() error {
	if p.IsDeleted() {
		return ErrProductIsDeleted
	}

	p.locked = false
	return nil
}

// SoftDelete marks the product as removed while keeping the row for audit
// queries. A reason and the deleting actor are required; deleting an already
// deleted product is a no-op so repeated requests stay idempotent.
func (p *OrderProduct) SoftDelete(by kernel.UUID, reason string, at time.Time) error {
	if p.IsDeleted() {
		return nil
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("deletion reason")
	}

	p.deletedAt = &at
	p.deletedBy = &by
	p.deletionReason = reason
	return nil
}

func (p *OrderProduct) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *OrderProduct) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *OrderProduct) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}
