package product

import (
	"errors"
	"fmt"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an OrderItem instance was not
// created through NewOrderItem or RestoreOrderItem.
var ErrItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// OrderItem is a variant line under an OrderProduct: one size/colour/option
// of the product with its own quantity, optional price override, and
// separate staff and manufacturer approval states.
type OrderItem struct {
	id        kernel.UUID
	productID kernel.UUID
	variant   string
	quantity  int

	priceOverride *kernel.Money

	adminApproval        Approval
	manufacturerApproval Approval

	isConstructed bool
}

// NewOrderItem creates an item with both approvals pending.
// Quantity must be a non-negative integer.
func NewOrderItem(id kernel.UUID, productID kernel.UUID, variant string, quantity int) (*OrderItem, error) {
	item := &OrderItem{
		adminApproval:        ApprovalPending,
		manufacturerApproval: ApprovalPending,
		isConstructed:        true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setVariant(variant),
		item.SetQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreOrderItem reconstructs an item from persistence.
func RestoreOrderItem(
	id kernel.UUID,
	productID kernel.UUID,
	variant string,
	quantity int,
	priceOverride *kernel.Money,
	adminApproval Approval,
	manufacturerApproval Approval,
) (*OrderItem, error) {
	item, err := NewOrderItem(id, productID, variant, quantity)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(adminApproval.Validate(), manufacturerApproval.Validate()); err != nil {
		return nil, err
	}

	item.priceOverride = priceOverride
	item.adminApproval = adminApproval
	item.manufacturerApproval = manufacturerApproval

	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the owning product.
func (i *OrderItem) ProductID() kernel.UUID {
	return i.productID
}

// Variant returns the variant identity (size, colour, option).
func (i *OrderItem) Variant() string {
	return i.variant
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// PriceOverride returns the per-item price override, nil when the item
// inherits the product price.
func (i *OrderItem) PriceOverride() *kernel.Money {
	return i.priceOverride
}

// AdminApproval returns the staff review state.
func (i *OrderItem) AdminApproval() Approval {
	return i.adminApproval
}

// ManufacturerApproval returns the factory review state.
func (i *OrderItem) ManufacturerApproval() Approval {
	return i.manufacturerApproval
}

// SetQuantity updates the ordered quantity. Zero is allowed (an item kept for
// reference with nothing ordered); negative quantities are rejected.
func (i *OrderItem) SetQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

// SetPriceOverride sets or clears the per-item price override.
func (i *OrderItem) SetPriceOverride(override *kernel.Money) {
	i.priceOverride = override
}

// SetAdminApproval records the staff review decision.
func (i *OrderItem) SetAdminApproval(approval Approval) error {
	if err := approval.Validate(); err != nil {
		return err
	}
	i.adminApproval = approval
	return nil
}

// SetManufacturerApproval records the factory review decision.
func (i *OrderItem) SetManufacturerApproval(approval Approval) error {
	if err := approval.Validate(); err != nil {
		return err
	}
	i.manufacturerApproval = approval
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *OrderItem) setVariant(variant string) error {
	if variant == "" {
		return errs.NewValueIsRequiredError("variant")
	}
	i.variant = variant
	return nil
}
