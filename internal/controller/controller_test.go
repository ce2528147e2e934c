package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/health"
	"loki-mcp/internal/model"
	"loki-mcp/internal/tools"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err error

	errorReq   dto.ErrorSummaryRequest
	searchReq  dto.LogSearchRequest
	podLogsReq dto.PodLogsRequest
}

func (f *fakeService) ErrorSummary(ctx context.Context, req dto.ErrorSummaryRequest) (*dto.ErrorSummaryResponse, error) {
	f.errorReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ErrorSummaryResponse{Namespace: req.Namespace, Hours: 1, Groups: []model.ErrorGroup{}}, nil
}

func (f *fakeService) PodRestarts(ctx context.Context, req dto.PodRestartsRequest) (*dto.PodRestartsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PodRestartsResponse{Hours: 1, Events: []model.RestartEvent{}}, nil
}

func (f *fakeService) SearchLogs(ctx context.Context, req dto.LogSearchRequest) (*dto.LogSearchResponse, error) {
	f.searchReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.LogSearchResponse{Query: req.Query, Hours: 1, Logs: []model.LogRecord{}}, nil
}

func (f *fakeService) ListNamespaces(ctx context.Context, req dto.NamespaceListRequest) (*dto.NamespaceListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.NamespaceListResponse{Namespaces: []string{"ai", "monitoring"}}, nil
}

func (f *fakeService) ListPods(ctx context.Context, req dto.PodListRequest) (*dto.PodListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PodListResponse{Namespace: req.Namespace, Pods: []string{"ollama-0"}}, nil
}

func (f *fakeService) PodLogs(ctx context.Context, req dto.PodLogsRequest) (*dto.PodLogsResponse, error) {
	f.podLogsReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PodLogsResponse{PodName: req.PodName, Hours: 1, Logs: []model.LogRecord{}}, nil
}

func newTestRouter(svc *fakeService, status *health.Status) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterLogRoutes(r, NewLogController(svc))
	RegisterToolRoutes(r, NewToolController(tools.NewRegistry(svc)))
	RegisterHealthRoutes(r, NewHealthController(status))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.InvalidInput("bad"), http.StatusBadRequest},
		{apperror.BackendUnreachable("dial", errors.New("refused")), http.StatusBadGateway},
		{apperror.BackendError(500, "boom"), http.StatusBadGateway},
		{apperror.ParseError("json", errors.New("eof")), http.StatusBadGateway},
		{apperror.Timeout("slow", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("wrapped: %w", apperror.InvalidInput("bad")), http.StatusBadRequest},
		{fmt.Errorf("%w: nope", tools.ErrUnknownTool), http.StatusNotFound},
		{errors.New("surprise"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestErrorSummaryBindsQuery(t *testing.T) {
	svc := &fakeService{}
	w := do(newTestRouter(svc, health.NewStatus()), http.MethodGet, "/api/v1/errors/summary?namespace=ai&hours=2.5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ai", svc.errorReq.Namespace)
	require.NotNil(t, svc.errorReq.Hours)
	assert.Equal(t, 2.5, *svc.errorReq.Hours)
}

func TestOmittedQueryParamsStayNil(t *testing.T) {
	svc := &fakeService{}
	w := do(newTestRouter(svc, health.NewStatus()), http.MethodGet, "/api/v1/logs/search?query=timeout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "timeout", svc.searchReq.Query)
	assert.Nil(t, svc.searchReq.Hours)
	assert.Nil(t, svc.searchReq.Limit)
}

func TestMalformedQueryParamIsBadRequest(t *testing.T) {
	w := do(newTestRouter(&fakeService{}, health.NewStatus()), http.MethodGet, "/api/v1/logs/search?query=x&limit=lots", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "InvalidInput", body.Kind)
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	svc := &fakeService{err: apperror.Timeout("query_range", context.DeadlineExceeded)}
	w := do(newTestRouter(svc, health.NewStatus()), http.MethodGet, "/api/v1/namespaces", "")

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	var body model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Timeout", body.Kind)
}

func TestPodLogsTakesPodFromPath(t *testing.T) {
	svc := &fakeService{}
	w := do(newTestRouter(svc, health.NewStatus()), http.MethodGet, "/api/v1/pods/ollama*/logs?namespace=ai&contains=error", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ollama*", svc.podLogsReq.PodName)
	assert.Equal(t, "ai", svc.podLogsReq.Namespace)
	assert.Equal(t, "error", svc.podLogsReq.Contains)
}

func TestListTools(t *testing.T) {
	w := do(newTestRouter(&fakeService{}, health.NewStatus()), http.MethodGet, "/api/v1/tools", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, len(tools.Definitions))
	assert.Equal(t, "get_error_summary", body.Data[0].Name)
}

func TestCallTool(t *testing.T) {
	r := newTestRouter(&fakeService{}, health.NewStatus())

	w := do(r, http.MethodPost, "/api/v1/tools/list_namespaces", `{"arguments":{"hours":3}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ToolCallResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "list_namespaces", resp.Tool)
	assert.Contains(t, resp.Text, "  - monitoring")

	w = do(r, http.MethodPost, "/api/v1/tools/list_namespaces", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/v1/tools/rm_rf", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/v1/tools/search_logs", `{"arguments":{"query":"x","limit":"many"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/tools/search_logs", `{"arguments":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadiness(t *testing.T) {
	status := health.NewStatus()
	r := newTestRouter(&fakeService{}, status)

	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)

	status.Record(time.Now(), nil)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", "").Code)
}
