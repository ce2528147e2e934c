package loki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"loki-mcp/internal/apperror"
	"loki-mcp/internal/parser"
	"loki-mcp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, timeout time.Duration) Client {
	return NewClientWithHTTP(srv.URL+"/", srv.Client(), timeout)
}

func TestQueryRangeSendsLokiParameters(t *testing.T) {
	start := time.Unix(1700000000, 0)
	end := start.Add(time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/query_range", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, `{namespace="ai"} |= "timeout"`, q.Get("query"))
		assert.Equal(t, strconv.FormatInt(start.UnixNano(), 10), q.Get("start"))
		assert.Equal(t, strconv.FormatInt(end.UnixNano(), 10), q.Get("end"))
		assert.Equal(t, "100", q.Get("limit"))
		assert.Equal(t, "forward", q.Get("direction"))
		_, _ = w.Write([]byte(`{"status":"success","data":{"resultType":"streams","result":[]}}`))
	}))
	defer srv.Close()

	body, err := newTestClient(srv, time.Second).QueryRange(context.Background(), repository.RangeQuery{
		Query:     `{namespace="ai"} |= "timeout"`,
		Start:     start,
		End:       end,
		Limit:     100,
		Direction: repository.DirectionForward,
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"resultType":"streams"`)
}

func TestLabelValuesPathAndScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/label/pod/values", r.URL.Path)
		assert.Equal(t, `{namespace="ai"}`, r.URL.Query().Get("query"))
		assert.Empty(t, r.URL.Query().Get("start"))
		_, _ = w.Write([]byte(`{"status":"success","data":["ollama-0"]}`))
	}))
	defer srv.Close()

	body, err := newTestClient(srv, time.Second).LabelValues(context.Background(), repository.LabelValuesQuery{
		Label: "pod",
		Query: `{namespace="ai"}`,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":["ollama-0"]}`, string(body))
}

func TestNonSuccessStatusIsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "parse error at line 1, col 2: syntax error", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, time.Second).QueryRange(context.Background(), repository.RangeQuery{Query: "{", Limit: 1})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindBackendError, appErr.Kind)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Detail, "syntax error")
}

func TestSlowBackendTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	started := time.Now()
	_, err := newTestClient(srv, 50*time.Millisecond).QueryRange(context.Background(), repository.RangeQuery{Query: "{}", Limit: 1})

	assert.ErrorIs(t, err, apperror.ErrTimeout)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClientWithHTTP(url, &http.Client{}, time.Second)
	_, err := c.LabelValues(context.Background(), repository.LabelValuesQuery{Label: "namespace"})
	assert.ErrorIs(t, err, apperror.ErrBackendUnreachable)
}

func TestReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ready" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ready"))
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv, time.Second).Ready(context.Background()))
}

func TestRepositoryParsesResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/loki/api/v1/query_range":
			_, _ = w.Write([]byte(`{"status":"success","data":{"resultType":"streams","result":[
				{"stream":{"namespace":"ai","pod":"ollama-0"},"values":[["2","b"],["1","a"]]}]}}`))
		default:
			_, _ = w.Write([]byte(`{"status":"success"}`))
		}
	}))
	defer srv.Close()

	repo := NewLokiLogRepository(newTestClient(srv, time.Second), parser.NewLokiResultParser())

	records, err := repo.QueryRange(context.Background(), repository.RangeQuery{Query: `{namespace="ai"}`, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Message)

	_, err = repo.LabelValues(context.Background(), repository.LabelValuesQuery{Label: "namespace"})
	assert.ErrorIs(t, err, apperror.ErrParseError)
}
