package pricing

import (
	"errors"

	"factoryorders/internal/core/domain/model/kernel"
)

// ErrOrderMarginIsNotConstructed is returned when an OrderMargin instance was
// not created through NewOrderMargin or RestoreOrderMargin.
var ErrOrderMarginIsNotConstructed = errors.New("OrderMargin must be created via NewOrderMargin constructor")

// OrderMargin is the order-level margin record, one-to-one with an order and
// created lazily the first time staff set an order-specific margin. Nil
// percentages mean "inherit the system default".
type OrderMargin struct {
	orderID                  kernel.UUID
	marginPercentage         *kernel.Percent
	shippingMarginPercentage *kernel.Percent

	isConstructed bool
}

// NewOrderMargin creates an empty margin record for the given order.
func NewOrderMargin(orderID kernel.UUID) (*OrderMargin, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &OrderMargin{
		orderID:       orderID,
		isConstructed: true,
	}, nil
}

// RestoreOrderMargin reconstructs a margin record from persistence.
func RestoreOrderMargin(
	orderID kernel.UUID,
	marginPercentage *kernel.Percent,
	shippingMarginPercentage *kernel.Percent,
) (*OrderMargin, error) {
	m, err := NewOrderMargin(orderID)
	if err != nil {
		return nil, err
	}

	m.marginPercentage = marginPercentage
	m.shippingMarginPercentage = shippingMarginPercentage
	return m, nil
}

// Validate ensures the record was created through a constructor.
func (m *OrderMargin) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrOrderMarginIsNotConstructed
	}
	return nil
}

// OrderID returns the owning order's identifier.
func (m *OrderMargin) OrderID() kernel.UUID {
	return m.orderID
}

// MarginPercentage returns the order-level product margin, nil when the
// order inherits the system default.
func (m *OrderMargin) MarginPercentage() *kernel.Percent {
	return m.marginPercentage
}

// ShippingMarginPercentage returns the order-level shipping margin, nil when
// the order inherits the system default.
func (m *OrderMargin) ShippingMarginPercentage() *kernel.Percent {
	return m.shippingMarginPercentage
}

// SetMarginPercentage sets or clears the order-level product margin.
func (m *OrderMargin) SetMarginPercentage(pct *kernel.Percent) {
	m.marginPercentage = pct
}

// SetShippingMarginPercentage sets or clears the order-level shipping margin.
func (m *OrderMargin) SetShippingMarginPercentage(pct *kernel.Percent) {
	m.shippingMarginPercentage = pct
}
