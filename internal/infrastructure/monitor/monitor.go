package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// SessionCounter is implemented by session stores that can report their size.
type SessionCounter interface {
	Count(ctx context.Context) (int, error)
}

// Monitor periodically checks the session backend of the reference server.
type Monitor struct {
	redis    *redislib.Client
	sessions SessionCounter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// New builds a monitor. Pass a nil redis client when sessions live in memory.
// A nil counter leaves Status.Sessions at zero.
func New(redis *redislib.Client, sessions SessionCounter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		redis:    redis,
		sessions: sessions,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
	m.refresh()
	return m
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Store:     StoreMemory,
		LastCheck: time.Now(),
	}
	if m.redis != nil {
		status.Store = StoreRedis
		status.Redis = m.checkRedis()
		if !status.Redis {
			m.logger.Warn("redis unreachable")
		}
	}
	if m.sessions != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		n, err := m.sessions.Count(ctx)
		cancel()
		if err != nil {
			m.logger.Warn("session count failed", zap.Error(err))
		}
		status.Sessions = n
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkRedis() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}
