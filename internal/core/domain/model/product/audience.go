package product

import (
	"fmt"

	"factoryorders/internal/pkg/errs"
)

// Audience identifies who is currently responsible for acting on a product.
// Every product has exactly one audience at a time; AudienceUnset means the
// product has not been routed yet.
type Audience int

const (
	// AudienceUnset means the product has not been routed to anyone.
	AudienceUnset Audience = iota

	// AudienceAdmin routes the product to internal staff.
	AudienceAdmin

	// AudienceManufacturer routes the product to the factory for pricing.
	AudienceManufacturer

	// AudienceClient routes the product to the client for review.
	AudienceClient
)

func getAudienceStrings() map[Audience]string {
	return map[Audience]string{
		AudienceUnset:        "Unset",
		AudienceAdmin:        "Admin",
		AudienceManufacturer: "Manufacturer",
		AudienceClient:       "Client",
	}
}

// Validate checks that the audience is one of the defined values.
// AudienceUnset is valid: it is the state of a freshly added product.
func (a Audience) Validate() error {
	if _, ok := getAudienceStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("audience is invalid", fmt.Errorf("%d is not a valid audience", a))
	}
	return nil
}

// AudienceFromString parses the human-readable audience name.
func AudienceFromString(s string) (Audience, error) {
	for audience, str := range getAudienceStrings() {
		if str == s {
			return audience, nil
		}
	}
	return AudienceUnset, errs.NewValueIsInvalidErrorWithCause("audience", fmt.Errorf("%q is not a valid audience", s))
}

// String returns the human-readable name of the audience.
func (a Audience) String() string {
	if str, ok := getAudienceStrings()[a]; ok {
		return str
	}
	return "Unknown"
}
