package pricing

import (
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
)

// System configuration keys for margin defaults. These are the row keys of
// the system_config table; the snapshot below is the only way the resolver
// sees them.
const (
	ConfigKeyDefaultMargin         = "default_margin_percentage"
	ConfigKeyDefaultShippingMargin = "default_shipping_margin_percentage"
)

// Config is an immutable snapshot of the system-wide margin defaults, loaded
// once per operation and passed explicitly into resolution. A nil default
// means the key is absent from system configuration; asking for it yields a
// ConfigurationMissingError rather than an implicit zero margin, so operators
// can tell "config gap" apart from "no margin needed".
type Config struct {
	defaultMargin         *kernel.Percent
	defaultShippingMargin *kernel.Percent
}

// NewConfig builds a snapshot from whatever defaults are present.
func NewConfig(defaultMargin, defaultShippingMargin *kernel.Percent) Config {
	return Config{
		defaultMargin:         defaultMargin,
		defaultShippingMargin: defaultShippingMargin,
	}
}

// DefaultMargin returns the system-wide product margin default.
func (c Config) DefaultMargin() (kernel.Percent, error) {
	if c.defaultMargin == nil {
		return kernel.Percent{}, errs.NewConfigurationMissingError(ConfigKeyDefaultMargin)
	}
	return *c.defaultMargin, nil
}

// DefaultShippingMargin returns the system-wide shipping margin default.
func (c Config) DefaultShippingMargin() (kernel.Percent, error) {
	if c.defaultShippingMargin == nil {
		return kernel.Percent{}, errs.NewConfigurationMissingError(ConfigKeyDefaultShippingMargin)
	}
	return *c.defaultShippingMargin, nil
}

// HasDefaultMargin reports whether the product margin default is seeded.
func (c Config) HasDefaultMargin() bool {
	return c.defaultMargin != nil
}

// HasDefaultShippingMargin reports whether the shipping margin default is seeded.
func (c Config) HasDefaultShippingMargin() bool {
	return c.defaultShippingMargin != nil
}
