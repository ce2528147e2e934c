package metrics

import (
	"loki-mcp/internal/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tool invocations, by tool and outcome (ok or an error kind).
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loki_mcp_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "outcome"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loki_mcp_tool_call_duration_seconds",
			Help:    "Tool invocation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"tool"},
	)

	// Loki HTTP requests, by endpoint and outcome.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loki_mcp_backend_requests_total",
			Help: "Total number of requests sent to Loki",
		},
		[]string{"endpoint", "outcome"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loki_mcp_backend_request_duration_seconds",
			Help:    "Loki request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 13),
		},
		[]string{"endpoint"},
	)

	BackendRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loki_mcp_backend_retries_total",
			Help: "Total number of retried Loki requests",
		},
		[]string{"operation"},
	)

	RecordsParsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loki_mcp_records_per_query",
			Help:    "Number of log records parsed per range query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	BackendReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loki_mcp_backend_ready",
			Help: "1 when the last Loki readiness probe succeeded, 0 otherwise",
		},
	)
)

// Outcome maps an operation error to a label value: "ok", the error kind, or
// "internal" for errors outside the taxonomy.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := apperror.KindOf(err); kind != "" {
		return string(kind)
	}
	return "internal"
}
