package observability

import (
	"context"
	"log/slog"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/ports"
)

// SwallowingAuditLogger writes audit entries through an AuditRepository but
// never lets a failure reach the caller. Failed writes increment the
// audit-failure counter and produce an error log; the entry is lost, the
// primary operation proceeds.
//
// It writes outside the primary operation's transaction on purpose: an audit
// storage problem must not roll back the mutation it describes.
type SwallowingAuditLogger struct {
	repo    ports.AuditRepository
	metrics *Metrics
	logger  *slog.Logger
}

// NewSwallowingAuditLogger creates the never-fail audit writer.
func NewSwallowingAuditLogger(repo ports.AuditRepository, metrics *Metrics, logger *slog.Logger) *SwallowingAuditLogger {
	return &SwallowingAuditLogger{
		repo:    repo,
		metrics: metrics,
		logger:  logger.With("component", "audit_logger"),
	}
}

// Record appends the entry, swallowing any storage error.
func (l *SwallowingAuditLogger) Record(ctx context.Context, entry *audit.Entry) {
	if err := entry.Validate(); err != nil {
		l.metrics.AuditLogFailures.Inc()
		l.logger.ErrorContext(ctx, "Dropping invalid audit entry", "error", err)
		return
	}

	if err := l.repo.Append(ctx, entry); err != nil {
		l.metrics.AuditLogFailures.Inc()
		l.logger.ErrorContext(ctx, "Failed to persist audit entry",
			"action", entry.Action(),
			"target_type", entry.TargetType(),
			"target_id", entry.TargetID(),
			"error", err,
		)
	}
}
