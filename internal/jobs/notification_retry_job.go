package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// NotificationRetrier re-attempts delivery of parked order notifications
// and reports how many remain parked.
type NotificationRetrier interface {
	FlushRetries(ctx context.Context) int
}

// NotificationRetryJob periodically flushes the dispatcher's retry
// buffer so that transient broker outages do not lose notifications.
type NotificationRetryJob struct {
	retrier NotificationRetrier
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRetryJob creates a job that flushes parked notifications
// every 30 seconds.
func NewNotificationRetryJob(retrier NotificationRetrier, logger *slog.Logger) *NotificationRetryJob {
	return &NotificationRetryJob{
		retrier: retrier,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_retry_job"),
	}
}

// Start begins the notification retry job.
func (j *NotificationRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if remaining := j.retrier.FlushRetries(ctx); remaining > 0 {
			j.logger.WarnContext(ctx, "Notifications still parked after retry", "remaining", remaining)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the notification retry job.
func (j *NotificationRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}
