package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/taskie/domain"
)

// SessionRepository keeps issued sessions in memory until they expire.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.ServerSession
	ttl      time.Duration
}

// NewSessionRepository creates an in-memory session repository.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		sessions: make(map[string]domain.ServerSession),
		ttl:      ttl,
	}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.ServerSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok || s.IsExpired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.ServerSession) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// PurgeExpired drops sessions that expired before now and returns how many were removed.
func (r *SessionRepository) PurgeExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	now := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()
	live := 0
	for _, s := range r.sessions {
		if !s.IsExpired(now) {
			live++
		}
	}
	return live, nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
