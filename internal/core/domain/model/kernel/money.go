package kernel

import (
	"fmt"
	"math"

	"factoryorders/internal/pkg/errs"
)

// Money is a currency amount held as integer cents to avoid floating-point
// drift in stored prices. Rounding happens once, at construction or margin
// application, and is always round-half-up to two decimal places.
//
// Money is a value object: immutable, comparable, safe to copy.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from integer cents.
// Negative amounts are rejected; prices in this domain are never negative.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates a Money value from a decimal amount,
// rounding half-up to the nearest cent.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidError("money amount")
	}
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%v is negative", amount),
		)
	}
	return Money{cents: roundHalfUp(amount * 100)}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal number of currency units.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// IsEqual reports whether two amounts are identical to the cent.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// ApplyMarginPercent derives a marked-up amount: m * (1 + pct/100),
// rounded half-up to the cent. The receiver is unchanged.
func (m Money) ApplyMarginPercent(pct Percent) Money {
	raw := float64(m.cents) * (1 + pct.Value()/100)
	return Money{cents: roundHalfUp(raw)}
}

// String formats the amount with two decimal places, e.g. "18.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// roundHalfUp rounds a non-negative value to the nearest integer,
// with .5 rounding up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
