package health

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusRecord(t *testing.T) {
	s := NewStatus()
	assert.False(t, s.Snapshot().Ready)
	assert.True(t, s.Snapshot().LastChecked.IsZero())

	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	s.Record(now, nil)
	assert.Equal(t, Snapshot{Ready: true, LastChecked: now}, s.Snapshot())

	s.Record(now.Add(30*time.Second), errors.New("connection refused"))
	snap := s.Snapshot()
	assert.False(t, snap.Ready)
	assert.Equal(t, "connection refused", snap.LastError)
	assert.Equal(t, now.Add(30*time.Second), snap.LastChecked)
}
