package jobs

import (
	"context"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const overdueItemsJobName = "overdue_items"

type overdueFlagger interface {
	Handle(ctx context.Context, cmd commands.FlagOverdueItemsCommand) (int, error)
}

// OverdueItemsJob raises an alert on stored units whose planned move time
// has passed.
type OverdueItemsJob struct {
	handler  overdueFlagger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewOverdueItemsJob(handler overdueFlagger, schedule string, logger *zap.Logger) *OverdueItemsJob {
	return &OverdueItemsJob{
		handler:  handler,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "overdue_items_job")),
	}
}

func (j *OverdueItemsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Overdue items job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *OverdueItemsJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	flagged, err := j.handler.Handle(ctx, commands.NewFlagOverdueItemsCommand())
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(overdueItemsJobName, "error").Inc()
		j.logger.Error("Overdue items job failed", zap.Int("flagged", flagged), zap.Error(err))
		return
	}

	metrics.JobRunsTotal.WithLabelValues(overdueItemsJobName, "ok").Inc()
	if flagged > 0 {
		j.logger.Warn("Overdue items flagged", zap.Int("flagged", flagged))
	}
}

func (j *OverdueItemsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Overdue items job stopped")
}
