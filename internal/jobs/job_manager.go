package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	draftExpiryJob  *DraftExpiryJob
	marginRepairJob *MarginRepairJob
}

// NewJobManager creates a new job manager over the scheduled jobs.
func NewJobManager(draftExpiryJob *DraftExpiryJob, marginRepairJob *MarginRepairJob) *JobManager {
	return &JobManager{
		draftExpiryJob:  draftExpiryJob,
		marginRepairJob: marginRepairJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.draftExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start draft expiry job: %w", err)
	}

	if err := jm.marginRepairJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.draftExpiryJob.Stop()
		return fmt.Errorf("failed to start margin repair job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.draftExpiryJob.Stop()
	jm.marginRepairJob.Stop()
}
