package kernel

import (
	"fmt"
	"math"

	"factoryorders/internal/pkg/errs"
)

// Percent is a non-negative percentage value, e.g. a margin of 80 means
// an 80% markup. Kept as a value object so margin fields cannot silently
// carry NaN or negative values into price computation.
type Percent struct {
	value float64
}

// NewPercent creates a Percent. Negative and non-finite values are rejected.
func NewPercent(value float64) (Percent, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Percent{}, errs.NewValueIsInvalidError("percent")
	}
	if value < 0 {
		return Percent{}, errs.NewValueIsInvalidErrorWithCause(
			"percent",
			fmt.Errorf("%v is negative", value),
		)
	}
	return Percent{value: value}, nil
}

// Value returns the raw percentage number.
func (p Percent) Value() float64 {
	return p.value
}

// IsEqual reports whether two percentages are identical.
func (p Percent) IsEqual(other Percent) bool {
	return p.value == other.value
}

// String formats the percentage, e.g. "80%".
func (p Percent) String() string {
	return fmt.Sprintf("%v%%", p.value)
}
