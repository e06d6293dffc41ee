package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"foodcourt/internal/core/application/usecases/commands"
)

// CourierBackfillJob periodically assigns couriers to orders that were
// created while no courier was registered. Runs every 30 seconds.
type CourierBackfillJob struct {
	handler commands.AssignCourierCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierBackfillJob creates a job that sweeps unassigned orders.
// Uses AssignCourierCommandHandler to backfill courier links.
func NewCourierBackfillJob(handler commands.AssignCourierCommandHandler, logger *slog.Logger) *CourierBackfillJob {
	return &CourierBackfillJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "courier_backfill_job"),
	}
}

// Start begins the backfill job on its 30-second schedule.
func (j *CourierBackfillJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignCourierCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Empty sweeps are the normal idle state, not failures.
			if !errors.Is(err, commands.ErrNoUnassignedOrders) && !errors.Is(err, commands.ErrNoCouriersAvailable) {
				j.logger.ErrorContext(ctx, "Courier backfill job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier backfill job started (running every 30 seconds)")
	return nil
}

// Stop stops the backfill job.
func (j *CourierBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier backfill job stopped")
}
