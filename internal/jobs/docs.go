// Package jobs provides scheduled background tasks for the forwarding core.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and call command handlers:
//
//  1. ReservationExpiryJob - releases storage reservations past their deadline
//  2. OverdueItemsJob - raises alerts on stored units past their planned move time
//
// # Usage
//
//	jobManager := jobs.NewJobManager(releaseHandler, flagHandler, jobs.Schedules{
//		ReservationExpiry: "0 * * * * *",
//		OverdueItems:      "0 */5 * * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// Every run is counted in the forwarding_job_runs_total metric by job and
// result. Failures are logged and never stop the schedule.
package jobs
