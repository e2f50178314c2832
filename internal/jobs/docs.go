// Package jobs provides scheduled background tasks for the shipping service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order notifications.
//
// # Available Jobs
//
// 1. NotificationRetryJob - Runs every 30 seconds to re-deliver order
// notifications whose broker publish previously failed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the notification dispatcher
//	jobManager := jobs.NewJobManager(dispatcher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty retry buffer is the normal case and produces no log output.
// Notifications that fail again stay parked and are picked up by the
// next run.
package jobs
