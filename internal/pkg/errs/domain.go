package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order-lifecycle error taxonomy.
var (
	ErrPreconditionFailed   = errors.New("precondition failed")
	ErrLocked               = errors.New("product is locked")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrIntegrity            = errors.New("integrity violation")
)

// PreconditionReason classifies why a status transition was refused.
// Callers use it to render a specific user-facing message.
type PreconditionReason int

const (
	// ReasonUnknown is the zero value and never produced by the domain.
	ReasonUnknown PreconditionReason = iota

	// ReasonStateNotReachable means the requested status is not a successor
	// of the current status.
	ReasonStateNotReachable

	// ReasonPermissionDenied means the acting role does not hold the
	// capability required for this transition.
	ReasonPermissionDenied

	// ReasonUnresolvedPricing means products required to be priced for this
	// transition are still missing a price.
	ReasonUnresolvedPricing

	// ReasonStaleState means a concurrent writer changed the order between
	// read and conditional update; the caller should re-read and retry.
	ReasonStaleState
)

func (r PreconditionReason) String() string {
	switch r {
	case ReasonStateNotReachable:
		return "state not reachable"
	case ReasonPermissionDenied:
		return "permission denied"
	case ReasonUnresolvedPricing:
		return "unresolved pricing"
	case ReasonStaleState:
		return "stale state"
	default:
		return "unknown"
	}
}

// PreconditionFailedError indicates a status transition was refused by a guard.
// The Reason distinguishes unreachable state, missing permission, unresolved
// pricing, and lost concurrent updates.
type PreconditionFailedError struct {
	Reason  PreconditionReason
	Message string
	Cause   error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a cause.
func NewPreconditionFailedError(reason PreconditionReason, message string) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason, Message: message}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError wrapping an underlying cause.
func NewPreconditionFailedErrorWithCause(
	reason PreconditionReason, message string, cause error,
) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason, Message: message, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (%s): %s (cause: %s)", ErrPreconditionFailed, e.Reason, e.Message, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s (%s): %s", ErrPreconditionFailed, e.Reason, e.Message))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// LockedError indicates a mutation was attempted on a locked product.
type LockedError struct {
	ParamName string
	ID        any
}

// NewLockedError creates a LockedError for the given product field and identity.
func NewLockedError(paramName string, id any) *LockedError {
	return &LockedError{ParamName: paramName, ID: id}
}

func (e *LockedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s on %s", ErrLocked, e.ParamName, e.ID))
}

func (e *LockedError) Unwrap() error {
	return ErrLocked
}

// ConfigurationMissingError indicates a required system configuration entry is
// absent. It is distinct from "no margin needed" so operators can seed the
// missing default instead of silently pricing with a zero margin.
type ConfigurationMissingError struct {
	Key string
}

// NewConfigurationMissingError creates a ConfigurationMissingError for the given key.
func NewConfigurationMissingError(key string) *ConfigurationMissingError {
	return &ConfigurationMissingError{Key: key}
}

func (e *ConfigurationMissingError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrConfigurationMissing, e.Key))
}

func (e *ConfigurationMissingError) Unwrap() error {
	return ErrConfigurationMissing
}

// IntegrityError signals a state that should be unreachable: a guard was
// bypassed or a cascade left orphans. Treated as a bug, logged loudly, and the
// operation aborted.
type IntegrityError struct {
	Message string
	Cause   error
}

// NewIntegrityError creates an IntegrityError without a cause.
func NewIntegrityError(message string) *IntegrityError {
	return &IntegrityError{Message: message}
}

// NewIntegrityErrorWithCause creates an IntegrityError wrapping an underlying cause.
func NewIntegrityErrorWithCause(message string, cause error) *IntegrityError {
	return &IntegrityError{Message: message, Cause: cause}
}

func (e *IntegrityError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrIntegrity, e.Message, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrIntegrity, e.Message))
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}
