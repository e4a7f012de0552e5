package jobs

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepHandler runs one change-detection sweep.
type SweepHandler interface {
	Handle(ctx context.Context, cmd commands.SweepStatusChangesCommand) (commands.SweepResult, error)
}

// StatusSweepJob runs the status sweep on a fixed interval. A run that is
// still going when the next tick fires makes that tick a no-op.
type StatusSweepJob struct {
	handler  SweepHandler
	interval time.Duration
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewStatusSweepJob creates the job. Each run is bounded by timeout; zero
// bounds it by the interval.
func NewStatusSweepJob(handler SweepHandler, interval, timeout time.Duration, logger *zap.Logger) *StatusSweepJob {
	if timeout <= 0 {
		timeout = interval
	}
	logger = loggerOrNop(logger).With(zap.String("component", "status_sweep_job"))

	return &StatusSweepJob{
		handler:  handler,
		interval: interval,
		timeout:  timeout,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger:   logger,
	}
}

// Start schedules the sweep every interval.
func (j *StatusSweepJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", j.interval)
	}

	if _, err := j.cron.AddFunc("@every "+j.interval.String(), func() {
		_, _ = j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("status sweep job started", zap.Duration("interval", j.interval))
	return nil
}

// Run performs one sweep now. The handler logs the outcome.
func (j *StatusSweepJob) Run(ctx context.Context) (commands.SweepResult, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	return j.handler.Handle(ctx, commands.NewSweepStatusChangesCommand())
}

// Stop unschedules the sweep and waits for a running one to finish.
func (j *StatusSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("status sweep job stopped")
}
