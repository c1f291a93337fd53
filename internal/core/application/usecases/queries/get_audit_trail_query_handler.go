package queries

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads the audit trail of one target, oldest first.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail reads.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trail := make([]GetAuditTrailQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			actor_role,
			action,
			old_value,
			new_value,
			occurred_at
		FROM audit_entries
		WHERE target_type = ?
		  AND target_id = ?
		ORDER BY occurred_at, id
	`, string(query.TargetType()), query.TargetID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, actorID uuid.UUID
		var actorRole int
		var action, oldValue, newValue string
		var occurredAt time.Time

		if err = rows.Scan(&id, &actorID, &actorRole, &action, &oldValue, &newValue, &occurredAt); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		trail = append(trail, GetAuditTrailQueryResponse{
			EntryID:    entryID,
			ActorID:    actor,
			ActorRole:  access.Role(actorRole),
			Action:     audit.ActionType(action),
			OldValue:   oldValue,
			NewValue:   newValue,
			OccurredAt: occurredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trail, nil
}
