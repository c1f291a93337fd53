package order

import (
	"fmt"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/pkg/errs"
)

// Status represents the lifecycle state of a factory order.
// It implements a state machine with defined transitions so orders follow
// the correct business workflow.
//
// State transitions:
//
//	Draft -> SubmittedToManufacturer -> PricedByManufacturer ->
//	SubmittedToClient -> ClientApproved -> ReadyForProduction ->
//	InProduction -> Completed
//
// Rejected is reachable from every non-terminal state. Draft is initial;
// Completed and Rejected are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status while staff assemble the order.
	Draft

	// SubmittedToManufacturer means the order awaits factory pricing.
	SubmittedToManufacturer

	// PricedByManufacturer means every manufacturer-routed product has a
	// factory price.
	PricedByManufacturer

	// SubmittedToClient means the order awaits the client's approval.
	SubmittedToClient

	// ClientApproved means the client accepted the priced order.
	ClientApproved

	// ReadyForProduction means production can be scheduled.
	ReadyForProduction

	// InProduction means the factory is producing the order.
	InProduction

	// Completed is the successful terminal state.
	Completed

	// Rejected is the failure terminal state, reachable from any
	// non-terminal status.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "Unknown",
		Draft:                   "Draft",
		SubmittedToManufacturer: "SubmittedToManufacturer",
		PricedByManufacturer:    "PricedByManufacturer",
		SubmittedToClient:       "SubmittedToClient",
		ClientApproved:          "ClientApproved",
		ReadyForProduction:      "ReadyForProduction",
		InProduction:            "InProduction",
		Completed:               "Completed",
		Rejected:                "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:                   "Draft",
		SubmittedToManufacturer: "SubmittedToManufacturer",
		PricedByManufacturer:    "PricedByManufacturer",
		SubmittedToClient:       "SubmittedToClient",
		ClientApproved:          "ClientApproved",
		ReadyForProduction:      "ReadyForProduction",
		InProduction:            "InProduction",
		Completed:               "Completed",
		Rejected:                "Rejected",
	}
}

// successors is the forward-transition table: each status maps to the one
// status that may follow it. Rejected is handled separately because it is
// reachable from every non-terminal state.
func successors() map[Status]Status {
	return map[Status]Status{
		Draft:                   SubmittedToManufacturer,
		SubmittedToManufacturer: PricedByManufacturer,
		PricedByManufacturer:    SubmittedToClient,
		SubmittedToClient:       ClientApproved,
		ClientApproved:          ReadyForProduction,
		ReadyForProduction:      InProduction,
		InProduction:            Completed,
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the human-readable status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Rejected
}

// CanTransitionTo reports whether the requested status is legal from the
// current one: its direct successor in the forward table, or Rejected from
// any non-terminal state.
func (s Status) CanTransitionTo(requested Status) bool {
	if requested == Rejected {
		return !s.IsTerminal()
	}
	next, ok := successors()[s]
	return ok && next == requested
}

// AllowedForRole reports whether the acting role may drive this specific
// transition:
//   - internal staff may perform any forward transition and rejection
//   - manufacturers may only move SubmittedToManufacturer to
//     PricedByManufacturer or reject at that point
//   - clients may only move SubmittedToClient to ClientApproved or request
//     rejection at that point
func (s Status) AllowedForRole(role access.Role, requested Status) bool {
	if !access.Can(role, access.CapUpdateOrderStatus) {
		return false
	}
	if role.IsInternal() {
		return true
	}

	switch role {
	case access.RoleManufacturer:
		return s == SubmittedToManufacturer &&
			(requested == PricedByManufacturer || requested == Rejected)
	case access.RoleClient:
		return s == SubmittedToClient &&
			(requested == ClientApproved || requested == Rejected)
	default:
		return false
	}
}

// TransitionTo validates a transition and returns the new status.
//
// Returns a PreconditionFailedError with ReasonStateNotReachable when the
// requested status is not a legal successor, and ReasonPermissionDenied when
// the role may not drive this transition. The current status is never
// mutated here; callers apply the returned value.
func (s Status) TransitionTo(requested Status, role access.Role) (Status, error) {
	if err := requested.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(requested) {
		return 0, errs.NewPreconditionFailedError(
			errs.ReasonStateNotReachable,
			fmt.Sprintf("%s is not reachable from %s", requested, s),
		)
	}

	if !s.AllowedForRole(role, requested) {
		return 0, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			fmt.Sprintf("%s may not move an order from %s to %s", role, s, requested),
		)
	}

	return requested, nil
}
