package jobs

import (
	"context"
	"log/slog"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/observability"

	"github.com/robfig/cron/v3"
)

// DraftExpiryJob runs the expired-draft sweep on a nightly schedule.
// Each run purges drafts older than the retention window, one transaction
// per order, and reports the outcome through metrics and logs.
type DraftExpiryJob struct {
	handler   commands.SweepExpiredDraftsCommandHandler
	retention commands.SweepExpiredDraftsCommand
	cron      *cron.Cron
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewDraftExpiryJob creates the nightly draft sweep job.
func NewDraftExpiryJob(
	handler commands.SweepExpiredDraftsCommandHandler,
	cmd commands.SweepExpiredDraftsCommand,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *DraftExpiryJob {
	return &DraftExpiryJob{
		handler:   handler,
		retention: cmd,
		cron:      cron.New(),
		metrics:   metrics,
		logger:    logger.With("component", "draft_expiry_job"),
	}
}

// Start schedules the sweep for 03:00 every day.
func (j *DraftExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 3 * * *", func() {
		ctx := context.Background()

		report, err := j.handler.Handle(ctx, j.retention)
		if err != nil {
			j.logger.ErrorContext(ctx, "Draft expiry sweep failed", "error", err)
			return
		}

		j.metrics.DraftsPurged.Add(float64(report.Purged))
		j.metrics.DraftPurgeFailures.Add(float64(len(report.Failures)))

		j.logger.InfoContext(ctx, "Draft expiry sweep finished",
			"examined", report.Examined,
			"purged", report.Purged,
			"failed", len(report.Failures),
		)
		for _, failure := range report.Failures {
			j.logger.WarnContext(ctx, "Draft purge failed",
				"order_id", failure.OrderID.String(),
				"reason", failure.Reason,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft expiry job started (daily at 03:00)")
	return nil
}

// Stop stops the draft expiry job.
func (j *DraftExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft expiry job stopped")
}
