package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	carrierSyncJob *CarrierSyncJob
	settlementJob  *SettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(carrierSyncJob *CarrierSyncJob, settlementJob *SettlementJob) *JobManager {
	return &JobManager{
		carrierSyncJob: carrierSyncJob,
		settlementJob:  settlementJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.carrierSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start carrier sync job: %w", err)
	}

	if err := jm.settlementJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.carrierSyncJob.Stop()
		return fmt.Errorf("failed to start settlement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.settlementJob.Stop()
	jm.carrierSyncJob.Stop()
}
