// Package session holds the token obtained at login and persists it between CLI runs.
package session

import (
	"sync"
	"time"

	"github.com/fastygo/taskie/domain"
)

// Holder is a guarded token cell. The zero value is ready to use and empty.
type Holder struct {
	mu      sync.RWMutex
	session domain.Session
}

// NewHolder returns a holder seeded with s.
func NewHolder(s domain.Session) *Holder {
	return &Holder{session: s}
}

// SetToken replaces the held token.
func (h *Holder) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = domain.Session{Token: token, CreatedAt: time.Now().UTC()}
}

// Set replaces the whole session.
func (h *Holder) Set(s domain.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = s
}

// Token returns the held token or "".
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session.Token
}

// Session returns a snapshot of the held session.
func (h *Holder) Session() domain.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

// Clear forgets the token.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = domain.Session{}
}
