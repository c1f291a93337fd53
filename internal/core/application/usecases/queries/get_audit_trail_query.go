package queries

import (
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery retrieves the audit entries recorded against one target.
// Entries survive the deletion of their target, so the trail of a purged
// order stays readable.
type GetAuditTrailQuery struct { //nolint:recvcheck //using for validation
	targetType audit.TargetType
	targetID   string

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates an audit trail query for one target.
func NewGetAuditTrailQuery(targetType audit.TargetType, targetID string) (GetAuditTrailQuery, error) {
	if targetType == "" {
		return GetAuditTrailQuery{}, errs.NewValueIsRequiredError("targetType")
	}
	if targetID == "" {
		return GetAuditTrailQuery{}, errs.NewValueIsRequiredError("targetID")
	}

	return GetAuditTrailQuery{
		targetType: targetType,
		targetID:   targetID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// TargetType returns the kind of record whose trail is requested.
func (q GetAuditTrailQuery) TargetType() audit.TargetType {
	return q.targetType
}

// TargetID returns the record identifier whose trail is requested.
func (q GetAuditTrailQuery) TargetID() string {
	return q.targetID
}

// GetAuditTrailQueryResponse is one audit entry row.
type GetAuditTrailQueryResponse struct {
	EntryID    kernel.UUID
	ActorID    kernel.UUID
	ActorRole  access.Role
	Action     audit.ActionType
	OldValue   string
	NewValue   string
	OccurredAt time.Time
}
