package health

import (
	"sync"
	"time"
)

// Snapshot is the result of the most recent backend readiness probe.
type Snapshot struct {
	Ready       bool      `json:"ready"`
	LastChecked time.Time `json:"lastChecked,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
}

// Status holds the latest probe result. It is written by the probe job and
// read by request handlers.
type Status struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) Record(checkedAt time.Time, err error) {
	snap := Snapshot{Ready: err == nil, LastChecked: checkedAt}
	if err != nil {
		snap.LastError = err.Error()
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
