// Package jobs provides the session's scheduled background tasks, built on
// github.com/robfig/cron/v3. The only job today is the snapshot refresh,
// which keeps the visible order set converged with the backend while local
// terminal state always wins the merge.
package jobs

import (
	"fmt"
	"log/slog"

	"agenthub/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	snapshotRefreshJob *SnapshotRefreshJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	loadSnapshotHandler commands.LoadSnapshotCommandHandler,
	refreshSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		snapshotRefreshJob: NewSnapshotRefreshJob(loadSnapshotHandler, refreshSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.snapshotRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start snapshot refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.snapshotRefreshJob.Stop()
}
