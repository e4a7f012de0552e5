package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionEvicter drops expired conversation sessions.
type SessionEvicter interface {
	EvictExpired() int
}

// SessionEvictionJob frees sessions abandoned mid-wizard.
type SessionEvictionJob struct {
	sessions SessionEvicter
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewSessionEvictionJob(sessions SessionEvicter, interval time.Duration, logger *zap.Logger) *SessionEvictionJob {
	logger = loggerOrNop(logger).With(zap.String("component", "session_eviction_job"))
	return &SessionEvictionJob{
		sessions: sessions,
		interval: interval,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger:   logger,
	}
}

func (j *SessionEvictionJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("eviction interval must be positive, got %s", j.interval)
	}
	if _, err := j.cron.AddFunc("@every "+j.interval.String(), func() { j.Run() }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("session eviction job started", zap.Duration("interval", j.interval))
	return nil
}

// Run evicts expired sessions now and returns how many were dropped.
func (j *SessionEvictionJob) Run() int {
	n := j.sessions.EvictExpired()
	if n > 0 {
		j.logger.Debug("sessions evicted", zap.Int("count", n))
	}
	return n
}

func (j *SessionEvictionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("session eviction job stopped")
}
