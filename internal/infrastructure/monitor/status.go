package monitor

import "time"

type Status struct {
	Store     string    `json:"session_store"`
	Redis     bool      `json:"redis"`
	Sessions  int       `json:"sessions"`
	LastCheck time.Time `json:"last_check"`
}

// Healthy reports whether the configured session store is reachable.
func (s Status) Healthy() bool {
	return s.Store != StoreRedis || s.Redis
}
