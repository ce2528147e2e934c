package scheduler

import (
	"context"
	"errors"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/health"
	"loki-mcp/internal/metrics"
	"loki-mcp/internal/repository"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	readyErr error
	deadline bool
}

func (s *stubClient) QueryRange(ctx context.Context, q repository.RangeQuery) ([]byte, error) {
	return nil, errors.New("not used")
}

func (s *stubClient) LabelValues(ctx context.Context, q repository.LabelValuesQuery) ([]byte, error) {
	return nil, errors.New("not used")
}

func (s *stubClient) Ready(ctx context.Context) error {
	_, s.deadline = ctx.Deadline()
	return s.readyErr
}

func TestReadinessProbeRecordsSuccess(t *testing.T) {
	client := &stubClient{}
	status := health.NewStatus()

	NewReadinessProbe(client, status, time.Second)()

	assert.True(t, client.deadline)
	assert.True(t, status.Snapshot().Ready)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BackendReady))
}

func TestReadinessProbeRecordsFailure(t *testing.T) {
	client := &stubClient{readyErr: apperror.BackendError(503, "Ingester not ready")}
	status := health.NewStatus()

	NewReadinessProbe(client, status, time.Second)()

	snap := status.Snapshot()
	assert.False(t, snap.Ready)
	assert.Contains(t, snap.LastError, "Ingester not ready")
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.BackendReady))
}
