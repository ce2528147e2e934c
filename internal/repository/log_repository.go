package repository

import (
	"context"
	"loki-mcp/internal/model"
	"time"
)

type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

type RangeQuery struct {
	Query     string
	Start     time.Time
	End       time.Time
	Limit     int
	Direction Direction
}

type LabelValuesQuery struct {
	Label string
	// Query optionally scopes the lookup to matching streams, e.g. {namespace="ai"}.
	Query string
	Start time.Time
	End   time.Time
}

// LogRepository is the read side of the log backend. Implementations must be
// safe to retry: every call is an idempotent GET.
type LogRepository interface {
	QueryRange(ctx context.Context, q RangeQuery) ([]model.LogRecord, error)
	LabelValues(ctx context.Context, q LabelValuesQuery) ([]string, error)
}
