package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiringStore drops sessions that expired before now.
type ExpiringStore interface {
	PurgeExpired(now time.Time) int
}

// Janitor periodically purges expired server sessions.
type Janitor struct {
	store    ExpiringStore
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
	now      func() time.Time
}

func NewJanitor(store ExpiringStore, interval time.Duration, logger *zap.Logger) *Janitor {
	if interval < time.Second {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &Janitor{
		store:    store,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
		interval: interval,
		now:      time.Now,
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = j.cron.AddFunc(schedule, func() { j.Sweep() })

	return j
}

// Start launches the cron scheduler.
func (j *Janitor) Start() {
	if j == nil || j.store == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("session janitor started", zap.Duration("interval", j.interval))
}

// Stop waits for a running sweep or for ctx, whichever ends first.
func (j *Janitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("session janitor stopped")
}

// Sweep purges once and returns the number of removed sessions.
func (j *Janitor) Sweep() int {
	if j == nil || j.store == nil {
		return 0
	}
	removed := j.store.PurgeExpired(j.now())
	if removed > 0 {
		j.logger.Debug("expired sessions purged", zap.Int("removed", removed))
	}
	return removed
}
