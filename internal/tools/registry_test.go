package tools

import (
	"context"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/model"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	calls int

	errorReq   dto.ErrorSummaryRequest
	searchReq  dto.LogSearchRequest
	podLogsReq dto.PodLogsRequest

	err error
}

func (s *stubService) ErrorSummary(ctx context.Context, req dto.ErrorSummaryRequest) (*dto.ErrorSummaryResponse, error) {
	s.calls++
	s.errorReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ErrorSummaryResponse{
		Namespace:      req.Namespace,
		Hours:          *req.Hours,
		TotalErrors:    2,
		LevelBreakdown: map[string]int{"ERROR": 2},
		AffectedPods:   []string{"ollama-0"},
		SampleErrors:   []string{"Error: timeout", "Error: timeout"},
		Groups:         []model.ErrorGroup{{Signature: "Error: timeout", Level: "ERROR", Count: 2}},
	}, nil
}

func (s *stubService) PodRestarts(ctx context.Context, req dto.PodRestartsRequest) (*dto.PodRestartsResponse, error) {
	s.calls++
	return &dto.PodRestartsResponse{Hours: 1}, nil
}

func (s *stubService) SearchLogs(ctx context.Context, req dto.LogSearchRequest) (*dto.LogSearchResponse, error) {
	s.calls++
	s.searchReq = req
	return &dto.LogSearchResponse{Query: req.Query, Hours: 1}, nil
}

func (s *stubService) ListNamespaces(ctx context.Context, req dto.NamespaceListRequest) (*dto.NamespaceListResponse, error) {
	s.calls++
	return &dto.NamespaceListResponse{Namespaces: []string{"ai", "monitoring"}}, nil
}

func (s *stubService) ListPods(ctx context.Context, req dto.PodListRequest) (*dto.PodListResponse, error) {
	s.calls++
	return &dto.PodListResponse{Namespace: req.Namespace, Pods: []string{"ollama-0"}}, nil
}

func (s *stubService) PodLogs(ctx context.Context, req dto.PodLogsRequest) (*dto.PodLogsResponse, error) {
	s.calls++
	s.podLogsReq = req
	return &dto.PodLogsResponse{PodName: req.PodName, Hours: 1}, nil
}

func TestDefinitionsTable(t *testing.T) {
	names := make([]string, 0, len(Definitions))
	for _, d := range Definitions {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		assert.NotNil(t, d.Handler, d.Name)
		assert.Equal(t, "object", d.InputSchema["type"], d.Name)
	}
	assert.Equal(t, []string{
		"get_error_summary",
		"find_pod_restarts",
		"search_logs",
		"list_namespaces",
		"list_pods",
		"get_pod_logs",
	}, names)

	assert.Equal(t, []string{"query"}, Definitions[2].InputSchema["required"])
	assert.Equal(t, []string{"pod_name"}, Definitions[5].InputSchema["required"])
}

func TestCallDecodesTypedArguments(t *testing.T) {
	svc := &stubService{}
	reg := NewRegistry(svc)

	resp, err := reg.Call(context.Background(), "get_error_summary", map[string]interface{}{
		"namespace": "ai",
		"hours":     2.0,
	})
	require.NoError(t, err)

	assert.Equal(t, "ai", svc.errorReq.Namespace)
	require.NotNil(t, svc.errorReq.Hours)
	assert.Equal(t, 2.0, *svc.errorReq.Hours)

	assert.Equal(t, "get_error_summary", resp.Tool)
	_, parseErr := uuid.Parse(resp.CallID)
	assert.NoError(t, parseErr)
	assert.Contains(t, resp.Text, "Total Errors: 2")
	assert.IsType(t, &dto.ErrorSummaryResponse{}, resp.Result)
	assert.False(t, resp.FinishedAt.IsZero())
}

func TestCallLeavesOmittedFieldsNil(t *testing.T) {
	svc := &stubService{}
	reg := NewRegistry(svc)

	_, err := reg.Call(context.Background(), "get_pod_logs", map[string]interface{}{
		"pod_name": "ollama*",
		"limit":    50.0,
	})
	require.NoError(t, err)

	assert.Equal(t, "ollama*", svc.podLogsReq.PodName)
	assert.Nil(t, svc.podLogsReq.Hours)
	require.NotNil(t, svc.podLogsReq.Limit)
	assert.Equal(t, 50, *svc.podLogsReq.Limit)
}

func TestCallRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"wrong type", "search_logs", map[string]interface{}{"query": "x", "hours": "two"}},
		{"fractional limit", "search_logs", map[string]interface{}{"query": "x", "limit": 1.5}},
		{"unknown field", "list_pods", map[string]interface{}{"namespace": "ai", "label": "app"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			_, err := NewRegistry(svc).Call(context.Background(), tt.tool, tt.args)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestCallUnknownTool(t *testing.T) {
	_, err := NewRegistry(&stubService{}).Call(context.Background(), "drop_table", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestCallPropagatesServiceErrorKind(t *testing.T) {
	svc := &stubService{err: apperror.BackendError(500, "ingester down")}
	_, err := NewRegistry(svc).Call(context.Background(), "get_error_summary", map[string]interface{}{"hours": 1.0})
	assert.ErrorIs(t, err, apperror.ErrBackendError)
	assert.Equal(t, apperror.KindBackendError, apperror.KindOf(err))
}

func TestCallNilArguments(t *testing.T) {
	svc := &stubService{}
	resp, err := NewRegistry(svc).Call(context.Background(), "list_namespaces", nil)
	require.NoError(t, err)
	assert.Equal(t, "Namespaces with logs:\n  - ai\n  - monitoring\n", resp.Text)
}

func TestRenderPodLogsShowsTail(t *testing.T) {
	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	var logs []model.LogRecord
	for i := 0; i < 25; i++ {
		logs = append(logs, model.LogRecord{Timestamp: base.Add(time.Duration(i) * time.Second), Message: "line"})
	}

	text := RenderPodLogs(&dto.PodLogsResponse{PodName: "ollama-0", Hours: 0.5, Logs: logs})

	assert.True(t, strings.HasPrefix(text, "Logs for pod 'ollama-0' (last 0.5 hour(s)):\nTotal Lines: 25\n"))
	assert.Equal(t, 20, strings.Count(text, "] line"))
	assert.Contains(t, text, "[2026-10-17T10:00:24Z] line")
	assert.NotContains(t, text, "[2026-10-17T10:00:04Z] line")
}

func TestRenderLogSearchGroupsByPod(t *testing.T) {
	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	rec := func(pod, msg string) model.LogRecord {
		return model.LogRecord{Timestamp: base, Labels: map[string]string{"k8s_pod_name": pod}, Message: msg}
	}

	text := RenderLogSearch(&dto.LogSearchResponse{
		Query:     "timeout",
		Hours:     1,
		PodLabel:  "k8s_pod_name",
		Truncated: true,
		Logs:      []model.LogRecord{rec("a-0", "timeout 1"), rec("b-0", "timeout 2"), rec("a-0", "timeout 3")},
	})

	assert.Contains(t, text, "Total Matches: 3+ (limit reached)")
	assert.NotContains(t, text, "Pod: unknown")
	assert.Less(t, strings.Index(text, "Pod: a-0"), strings.Index(text, "Pod: b-0"))
	assert.Less(t, strings.Index(text, "timeout 3"), strings.Index(text, "Pod: b-0"))
}

func TestRenderPodRestarts(t *testing.T) {
	text := RenderPodRestarts(&dto.PodRestartsResponse{
		Namespace:          "ai",
		Hours:              1,
		TotalRestartEvents: 2,
		Events: []model.RestartEvent{{
			Pod: "ollama-0", Namespace: "ai", Reason: "OOMKilled", Occurrences: 2,
			LastSeen: time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC), SampleMessage: "OOMKilled",
		}},
	})
	assert.Contains(t, text, "Pod Restart Summary for namespace ai (last 1 hour(s)):")
	assert.Contains(t, text, "ai/ollama-0: 2 OOMKilled event(s), last at 2026-10-17T10:00:00Z")
}
