package jobs

import (
	"context"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reservationExpiryJobName = "reservation_expiry"

type reservationReleaser interface {
	Handle(ctx context.Context, cmd commands.ReleaseExpiredReservationsCommand) (int, error)
}

// ReservationExpiryJob clears reservations whose deadline has passed.
// Expiry is already honoured lazily by every read of a location, so the job
// only tidies stored state.
type ReservationExpiryJob struct {
	handler  reservationReleaser
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewReservationExpiryJob(handler reservationReleaser, schedule string, logger *zap.Logger) *ReservationExpiryJob {
	return &ReservationExpiryJob{
		handler:  handler,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "reservation_expiry_job")),
	}
}

func (j *ReservationExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Reservation expiry job started", zap.String("schedule", j.schedule))
	return nil
}

// RunOnce performs a single sweep. Partial failures are logged; the
// released count still includes every location that was cleared.
func (j *ReservationExpiryJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	released, err := j.handler.Handle(ctx, commands.NewReleaseExpiredReservationsCommand())
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(reservationExpiryJobName, "error").Inc()
		j.logger.Error("Reservation expiry job failed", zap.Int("released", released), zap.Error(err))
		return
	}

	metrics.JobRunsTotal.WithLabelValues(reservationExpiryJobName, "ok").Inc()
	if released > 0 {
		j.logger.Info("Expired reservations released", zap.Int("released", released))
	}
}

// Stop waits for a running sweep to finish.
func (j *ReservationExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Reservation expiry job stopped")
}
