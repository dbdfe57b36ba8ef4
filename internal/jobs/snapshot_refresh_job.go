package jobs

import (
	"context"
	"log/slog"

	"agenthub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SnapshotRefreshJob periodically re-fetches the order snapshot from the
// backend and merges it into the visible set. A failed refresh is logged and
// skipped; the store keeps its last-known state.
type SnapshotRefreshJob struct {
	handler  commands.LoadSnapshotCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSnapshotRefreshJob creates a refresh job with the given cron schedule
// (six-field expression, e.g. "0 */1 * * * *" for every minute).
func NewSnapshotRefreshJob(handler commands.LoadSnapshotCommandHandler, schedule string, logger *slog.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "snapshot_refresh_job"),
	}
}

// Start begins periodic snapshot refreshes on the configured schedule.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewLoadSnapshotCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Fail-soft: the visible set keeps its last-known state.
			j.logger.ErrorContext(ctx, "Snapshot refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the refresh job.
func (j *SnapshotRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
