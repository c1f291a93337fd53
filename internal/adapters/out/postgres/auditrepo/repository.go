package auditrepo

import (
	"context"

	"factoryorders/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists a new audit entry.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByTarget retrieves the entries for one target, newest first.
func (r *GormAuditRepository) GetByTarget(
	ctx context.Context,
	targetType audit.TargetType,
	targetID string,
) ([]*audit.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Find(&dtos, "target_type = ? AND target_id = ?", string(targetType), targetID).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
