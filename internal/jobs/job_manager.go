package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedules holds six-field cron expressions (seconds first).
type Schedules struct {
	ReservationExpiry string
	OverdueItems      string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reservationExpiryJob *ReservationExpiryJob
	overdueItemsJob      *OverdueItemsJob
}

func NewJobManager(
	releaseHandler reservationReleaser,
	flagHandler overdueFlagger,
	schedules Schedules,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		reservationExpiryJob: NewReservationExpiryJob(releaseHandler, schedules.ReservationExpiry, logger),
		overdueItemsJob:      NewOverdueItemsJob(flagHandler, schedules.OverdueItems, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reservationExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start reservation expiry job: %w", err)
	}

	if err := jm.overdueItemsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reservationExpiryJob.Stop()
		return fmt.Errorf("failed to start overdue items job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueItemsJob.Stop()
	jm.reservationExpiryJob.Stop()
}
