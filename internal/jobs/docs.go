// Package jobs provides scheduled background tasks for the order tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StatusSweepJob - runs the change-detection sweep every POLL_INTERVAL and
// notifies subscribers about status changes
// 2. SessionEvictionJob - drops in-memory conversation sessions past their TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewStatusSweepJob(sweepHandler, 3*time.Minute, 0, logger),
//		jobs.NewSessionEvictionJob(sessions, 10*time.Minute, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use "@every <interval>" schedules wrapped in SkipIfStillRunning,
// so a slow sweep never overlaps the next one.
//
// # Error Handling
//
// A failed sweep is logged and the next tick tries again; nothing is retried
// within a run.
package jobs
