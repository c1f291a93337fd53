package jobs

import (
	"context"
	"log/slog"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/observability"

	"github.com/robfig/cron/v3"
)

// MarginRepairJob periodically re-resolves client prices for products left
// unpriced by missing configuration or past resolution failures.
type MarginRepairJob struct {
	handler commands.RepairMarginsCommandHandler
	cmd     commands.RepairMarginsCommand
	cron    *cron.Cron
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewMarginRepairJob creates the hourly margin repair job.
func NewMarginRepairJob(
	handler commands.RepairMarginsCommandHandler,
	cmd commands.RepairMarginsCommand,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *MarginRepairJob {
	return &MarginRepairJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(),
		metrics: metrics,
		logger:  logger.With("component", "margin_repair_job"),
	}
}

// Start schedules the repair batch at the top of every hour.
func (j *MarginRepairJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		report, err := j.handler.Handle(ctx, j.cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Margin repair batch failed", "error", err)
			return
		}

		j.metrics.PricesRepaired.Add(float64(report.Repaired))

		if report.Examined == 0 {
			return
		}

		j.logger.InfoContext(ctx, "Margin repair batch finished",
			"examined", report.Examined,
			"repaired", report.Repaired,
			"failed", len(report.Failures),
		)
		for _, failure := range report.Failures {
			j.logger.WarnContext(ctx, "Product still unresolved",
				"product_id", failure.ProductID.String(),
				"reason", failure.Reason,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Margin repair job started (hourly)")
	return nil
}

// Stop stops the margin repair job.
func (j *MarginRepairJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Margin repair job stopped")
}
