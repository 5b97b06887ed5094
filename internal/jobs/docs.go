// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path cannot cover.
//
// # Available Jobs
//
// 1. CarrierSyncJob - Runs every minute to pull carrier tracking state for
// parcels in transit, catching webhooks the carrier failed to deliver
// 2. SettlementJob - Runs every minute to release escrow for suborders whose
// delivery preconditions hold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(carrierSyncJob, settlementJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs skip concurrency conflicts silently; the next tick re-reads
// current state and retries whatever is still pending
// - All other per-item failures are logged and do not stop the sweep
// - Failed job starts will stop any already running jobs
package jobs
