package jobs

import (
	"context"
	"log/slog"

	"bakery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourierSyncJob periodically re-submits orders whose courier-platform sync
// is pending or retryably failed. Runs every minute; an order stuck behind a
// platform outage is picked up by a later sweep without operator action.
type CourierSyncJob struct {
	handler commands.SyncCourierOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierSyncJob creates a new job for courier re-submission.
func NewCourierSyncJob(handler commands.SyncCourierOrdersCommandHandler, logger *slog.Logger) *CourierSyncJob {
	return &CourierSyncJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "courier_sync_job"),
	}
}

// Start begins the courier sync job to run every minute.
func (j *CourierSyncJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSyncCourierOrdersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Courier sync job failed to build command", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Courier sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier sync job started (running every minute)")
	return nil
}

// Stop stops the courier sync job.
func (j *CourierSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier sync job stopped")
}
