package services

import (
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/core/domain/model/product"
)

// MarginResolver is a domain service that derives client-facing prices from
// manufacturer-facing prices through the margin override hierarchy.
//
// Override precedence, highest first:
//  1. the product's own margin override
//  2. the owning order's margin record
//  3. the system-wide default from configuration
//
// Resolution is a repair operation, not a live cascade: it is a pure function
// of (product, order margin record, config snapshot), idempotent and
// convergent, so it can be re-run across the whole order set after any
// config or override change. Losing a race with a concurrent price update
// just means the next pass corrects it.
//
// Business rules:
//   - A nil manufacturer price never produces a client price; resolution is
//     skipped, not zero-filled
//   - A missing system default is a ConfigurationMissingError, distinct from
//     "no margin needed"
//   - Soft-deleted products are skipped as if absent
//   - The resolved price and the margin that produced it are applied together
type MarginResolver struct{}

// NewMarginResolver creates a new MarginResolver instance.
func NewMarginResolver() MarginResolver {
	return MarginResolver{}
}

// ResolveProductPrice derives the client price for one product and applies it
// together with the margin used.
//
// Returns (true, nil) when a price was resolved or corrected, (false, nil)
// when the product has no manufacturer price, is soft-deleted, or already
// carries the price the hierarchy yields, and an error when the margin
// hierarchy bottoms out on a missing system default.
func (r MarginResolver) ResolveProductPrice(
	p *product.OrderProduct,
	orderMargin *pricing.OrderMargin,
	cfg pricing.Config,
) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if p.IsDeleted() || p.ManufacturerPrice() == nil {
		return false, nil
	}

	margin, err := r.productMargin(p, orderMargin, cfg)
	if err != nil {
		return false, err
	}

	clientPrice := p.ManufacturerPrice().ApplyMarginPercent(margin)
	if priceConverged(p.ClientPrice(), p.MarginApplied(), clientPrice, margin) {
		return false, nil
	}
	if err = p.ApplyResolvedPrice(clientPrice, margin); err != nil {
		return false, err
	}

	return true, nil
}

// ResolveShippingPrice derives the client shipping price for one product,
// mirroring ResolveProductPrice with the shipping margin hierarchy.
func (r MarginResolver) ResolveShippingPrice(
	p *product.OrderProduct,
	orderMargin *pricing.OrderMargin,
	cfg pricing.Config,
) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if p.IsDeleted() || p.ManufacturerShippingPrice() == nil {
		return false, nil
	}

	margin, err := r.shippingMargin(p, orderMargin, cfg)
	if err != nil {
		return false, err
	}

	clientPrice := p.ManufacturerShippingPrice().ApplyMarginPercent(margin)
	if priceConverged(p.ClientShippingPrice(), p.ShippingMarginApplied(), clientPrice, margin) {
		return false, nil
	}
	if err = p.ApplyResolvedShipping(clientPrice, margin); err != nil {
		return false, err
	}

	return true, nil
}

// ResolveProduct runs both product and shipping resolution for one product.
// Returns true when either price changed hands.
func (r MarginResolver) ResolveProduct(
	p *product.OrderProduct,
	orderMargin *pricing.OrderMargin,
	cfg pricing.Config,
) (bool, error) {
	priced, err := r.ResolveProductPrice(p, orderMargin, cfg)
	if err != nil {
		return false, err
	}

	shipped, err := r.ResolveShippingPrice(p, orderMargin, cfg)
	if err != nil {
		return priced, err
	}

	return priced || shipped, nil
}

// priceConverged reports whether the stored price and margin already match
// what the hierarchy yields, so re-running resolution is a no-op.
func priceConverged(
	currentPrice *kernel.Money,
	currentMargin *kernel.Percent,
	resolvedPrice kernel.Money,
	resolvedMargin kernel.Percent,
) bool {
	return currentPrice != nil && currentMargin != nil &&
		currentPrice.IsEqual(resolvedPrice) && currentMargin.IsEqual(resolvedMargin)
}

func (r MarginResolver) productMargin(
	p *product.OrderProduct,
	orderMargin *pricing.OrderMargin,
	cfg pricing.Config,
) (kernel.Percent, error) {
	if override := p.MarginOverride(); override != nil {
		return *override, nil
	}
	if orderMargin != nil {
		if pct := orderMargin.MarginPercentage(); pct != nil {
			return *pct, nil
		}
	}
	return cfg.DefaultMargin()
}

func (r MarginResolver) shippingMargin(
	p *product.OrderProduct,
	orderMargin *pricing.OrderMargin,
	cfg pricing.Config,
) (kernel.Percent, error) {
	if override := p.ShippingMarginOverride(); override != nil {
		return *override, nil
	}
	if orderMargin != nil {
		if pct := orderMargin.ShippingMarginPercentage(); pct != nil {
			return *pct, nil
		}
	}
	return cfg.DefaultShippingMargin()
}
