package order

import (
	"fmt"
	"regexp"

	"factoryorders/internal/pkg/errs"
)

// orderNumberPattern matches "<PREFIX>-<6-digit sequence>", e.g. "FO-000042".
var orderNumberPattern = regexp.MustCompile(`^[A-Z]{2,8}-\d{6}$`)

const maxOrderSequence = 999999

// Number is the human-readable order identifier shown on documents and
// invoices, formatted as "<PREFIX>-<6-digit sequence>".
type Number struct {
	value string
}

// NewNumber formats an order number from a prefix and a sequence value.
// The prefix must be 2-8 uppercase letters and the sequence must fit in six
// digits.
func NewNumber(prefix string, sequence int64) (Number, error) {
	if sequence < 0 || sequence > maxOrderSequence {
		return Number{}, errs.NewValueIsOutOfRangeError("order sequence", sequence, 0, maxOrderSequence)
	}

	n := Number{value: fmt.Sprintf("%s-%06d", prefix, sequence)}
	if !orderNumberPattern.MatchString(n.value) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order number",
			fmt.Errorf("%q does not match PREFIX-NNNNNN", n.value),
		)
	}

	return n, nil
}

// NumberFromString parses a stored order number.
func NumberFromString(s string) (Number, error) {
	if !orderNumberPattern.MatchString(s) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order number",
			fmt.Errorf("%q does not match PREFIX-NNNNNN", s),
		)
	}
	return Number{value: s}, nil
}

// String returns the formatted order number.
func (n Number) String() string {
	return n.value
}

// IsEqual reports whether two order numbers are identical.
func (n Number) IsEqual(other Number) bool {
	return n.value == other.value
}

// Validate returns an error for the zero value.
func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	return nil
}
