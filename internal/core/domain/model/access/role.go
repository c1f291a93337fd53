package access

import (
	"fmt"

	"factoryorders/internal/pkg/errs"
)

// Role identifies the kind of actor performing an operation.
// It is a tagged variant rather than a user record: authentication and
// session handling live outside the core, which only ever sees the role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin is internal staff with full administrative capability.
	RoleAdmin

	// RoleStaff is internal staff managing orders day to day.
	RoleStaff

	// RoleManufacturer is the factory pricing and producing the order.
	RoleManufacturer

	// RoleClient is the purchasing customer.
	RoleClient
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:      "Unknown",
		RoleAdmin:        "Admin",
		RoleStaff:        "Staff",
		RoleManufacturer: "Manufacturer",
		RoleClient:       "Client",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAdmin:        "Admin",
		RoleStaff:        "Staff",
		RoleManufacturer: "Manufacturer",
		RoleClient:       "Client",
	}
}

// Validate checks that the role is one of the defined valid roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses the human-readable role name.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// IsInternal reports whether the role belongs to internal staff.
func (r Role) IsInternal() bool {
	return r == RoleAdmin || r == RoleStaff
}
