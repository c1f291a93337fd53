package services

import (
	"fmt"

	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"
)

// TransitionGuard is a domain service enforcing the pricing-completeness
// preconditions of status transitions. It lives outside the Order aggregate
// because it needs the order's products, which are loaded separately.
//
// Guards:
//   - entering PricedByManufacturer requires every live manufacturer-routed
//     product to carry a manufacturer price
//   - entering ClientApproved requires every live client-routed product to
//     carry a resolved client price
//
// Soft-deleted products are ignored as if absent.
type TransitionGuard struct{}

// NewTransitionGuard creates a new TransitionGuard instance.
func NewTransitionGuard() TransitionGuard {
	return TransitionGuard{}
}

// CheckPricingComplete verifies the pricing precondition for the requested
// status against the order's products. Transitions without a pricing
// precondition pass unconditionally.
//
// Returns a PreconditionFailedError with ReasonUnresolvedPricing naming the
// offending products, so the caller can render a specific message.
func (g TransitionGuard) CheckPricingComplete(requested order.Status, products []*product.OrderProduct) error {
	switch requested {
	case order.PricedByManufacturer:
		return g.check(products, product.AudienceManufacturer, "manufacturer price",
			func(p *product.OrderProduct) bool { return p.ManufacturerPrice() != nil })
	case order.ClientApproved:
		return g.check(products, product.AudienceClient, "client price",
			func(p *product.OrderProduct) bool { return p.ClientPrice() != nil })
	default:
		return nil
	}
}

func (g TransitionGuard) check(
	products []*product.OrderProduct,
	audience product.Audience,
	priceName string,
	priced func(*product.OrderProduct) bool,
) error {
	var unpriced []string
	for _, p := range products {
		if p.IsDeleted() || p.Audience() != audience {
			continue
		}
		if !priced(p) {
			unpriced = append(unpriced, p.ID().String())
		}
	}

	if len(unpriced) > 0 {
		return errs.NewPreconditionFailedError(
			errs.ReasonUnresolvedPricing,
			fmt.Sprintf("%d product(s) missing a %s: %v", len(unpriced), priceName, unpriced),
		)
	}

	return nil
}
