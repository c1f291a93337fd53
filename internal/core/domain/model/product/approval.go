package product

import (
	"fmt"

	"factoryorders/internal/pkg/errs"
)

// Approval is the tri-state review status of an order item,
// tracked separately for staff and for the manufacturer.
type Approval int

const (
	// ApprovalPending means the item has not been reviewed yet.
	ApprovalPending Approval = iota

	// ApprovalApproved means the reviewer accepted the item.
	ApprovalApproved

	// ApprovalRejected means the reviewer declined the item.
	ApprovalRejected
)

func getApprovalStrings() map[Approval]string {
	return map[Approval]string{
		ApprovalPending:  "Pending",
		ApprovalApproved: "Approved",
		ApprovalRejected: "Rejected",
	}
}

// Validate checks that the approval is one of the defined values.
func (a Approval) Validate() error {
	if _, ok := getApprovalStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval is invalid", fmt.Errorf("%d is not a valid approval", a))
	}
	return nil
}

// ApprovalFromString parses the human-readable approval name.
func ApprovalFromString(s string) (Approval, error) {
	for approval, str := range getApprovalStrings() {
		if str == s {
			return approval, nil
		}
	}
	return ApprovalPending, errs.NewValueIsInvalidErrorWithCause("approval", fmt.Errorf("%q is not a valid approval", s))
}

// String returns the human-readable name of the approval state.
func (a Approval) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "Unknown"
}
