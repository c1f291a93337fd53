// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DraftExpiryJob - Runs nightly to purge draft orders older than the
// retention window, one transaction per order.
// 2. MarginRepairJob - Runs hourly to resolve client prices for products the
// margin hierarchy previously could not serve.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(draftExpiryJob, marginRepairJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs collect per-record failures into run reports instead of
// aborting: one bad order or product never blocks the rest of the batch.
// Run outcomes surface through slog and the Prometheus counters.
package jobs
