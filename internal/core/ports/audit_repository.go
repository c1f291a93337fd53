package ports

import (
	"context"

	"factoryorders/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for audit entries.
// The store is append-only: entries are never updated or deleted by normal
// flow, and they survive the deletion of the records they reference.
type AuditRepository interface {
	// Append persists a new audit entry.
	Append(ctx context.Context, entry *audit.Entry) error

	// GetByTarget retrieves entries for one target, newest first.
	GetByTarget(ctx context.Context, targetType audit.TargetType, targetID string) ([]*audit.Entry, error)
}

// AuditLogger is the write side used by command handlers. Unlike the
// repository it can never fail: implementations swallow storage errors and
// report them through metrics and logs, so audit trouble never breaks the
// primary operation it accompanies.
type AuditLogger interface {
	Record(ctx context.Context, entry *audit.Entry)
}
