// Package auditrepo persists the append-only audit trail. Rows reference
// their targets by plain string ID, not by foreign key, so they survive the
// cascade purge of the records they describe.
package auditrepo

import (
	"time"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is the database row for an audit entry.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;index"`
	ActorRole  int
	Action     string
	TargetType string `gorm:"index:idx_audit_target"`
	TargetID   string `gorm:"index:idx_audit_target"`
	OldValue   string
	NewValue   string
	OccurredAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default to "audit_entries".
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.ID().Bytes(),
		ActorID:    entry.ActorID().Bytes(),
		ActorRole:  int(entry.ActorRole()),
		Action:     string(entry.Action()),
		TargetType: string(entry.TargetType()),
		TargetID:   entry.TargetID(),
		OldValue:   entry.OldValue(),
		NewValue:   entry.NewValue(),
		OccurredAt: entry.OccurredAt(),
	}
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(
		id,
		actorID,
		access.Role(dto.ActorRole),
		audit.ActionType(dto.Action),
		audit.TargetType(dto.TargetType),
		dto.TargetID,
		dto.OldValue,
		dto.NewValue,
		dto.OccurredAt,
	)
}
