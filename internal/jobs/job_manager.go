// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(assignCourierHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//	    log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The courier backfill job runs every 30 seconds and ignores the expected
// idle states (no unassigned orders, no registered couriers).
package jobs

import (
	"fmt"
	"log/slog"

	"foodcourt/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierBackfillJob *CourierBackfillJob
}

// NewJobManager creates a job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	assignCourierHandler commands.AssignCourierCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		courierBackfillJob: NewCourierBackfillJob(assignCourierHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.courierBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.courierBackfillJob.Stop()
}
