package loki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"loki-mcp/config"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/metrics"
	"loki-mcp/internal/repository"
	"loki-mcp/internal/util"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	queryRangePath  = "/loki/api/v1/query_range"
	labelValuesPath = "/loki/api/v1/label/%s/values"
	readyPath       = "/ready"

	maxBodyBytes    = 64 << 20
	maxErrorSnippet = 512
)

// Client executes raw HTTP requests against the Loki API. It returns response
// bodies undecoded; every failure is an *apperror.Error.
type Client interface {
	QueryRange(ctx context.Context, q repository.RangeQuery) ([]byte, error)
	LabelValues(ctx context.Context, q repository.LabelValuesQuery) ([]byte, error)
	Ready(ctx context.Context) error
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(cfg *config.Config) (Client, error) {
	if cfg.Loki.URL == "" {
		log.Error().Msg("Loki URL is not configured.")
		return nil, errors.New("loki configuration missing")
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: cfg.Loki.Timeout,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
	}
	c := NewClientWithHTTP(cfg.Loki.URL, &http.Client{Transport: transport, Timeout: cfg.Loki.Timeout}, cfg.Loki.Timeout)
	log.Info().Str("url", cfg.Loki.URL).Dur("timeout", cfg.Loki.Timeout).Msg("Loki client initialized")
	return c, nil
}

// NewClientWithHTTP builds a Client around an existing *http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client, timeout time.Duration) Client {
	return &httpClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: hc,
		timeout:    timeout,
	}
}

func (c *httpClient) QueryRange(ctx context.Context, q repository.RangeQuery) ([]byte, error) {
	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("start", util.UnixNanoString(q.Start))
	params.Set("end", util.UnixNanoString(q.End))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Direction != "" {
		params.Set("direction", string(q.Direction))
	}
	return c.get(ctx, "query_range", queryRangePath, params)
}

func (c *httpClient) LabelValues(ctx context.Context, q repository.LabelValuesQuery) ([]byte, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if !q.Start.IsZero() {
		params.Set("start", util.UnixNanoString(q.Start))
	}
	if !q.End.IsZero() {
		params.Set("end", util.UnixNanoString(q.End))
	}
	return c.get(ctx, "label_values", fmt.Sprintf(labelValuesPath, url.PathEscape(q.Label)), params)
}

func (c *httpClient) Ready(ctx context.Context) error {
	_, err := c.get(ctx, "ready", readyPath, nil)
	return err
}

func (c *httpClient) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.doGet(ctx, endpoint, path, params)

	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(endpoint, metrics.Outcome(err)).Inc()
	return body, err
}

func (c *httpClient) doGet(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperror.BackendUnreachable("failed to build "+endpoint+" request", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("endpoint", endpoint).Str("query", params.Get("query")).Msg("Sending Loki request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status_code", resp.StatusCode).Str("endpoint", endpoint).Msg("Loki returned non-success status")
		return nil, apperror.BackendError(resp.StatusCode, fmt.Sprintf("loki %s returned HTTP %d: %s", endpoint, resp.StatusCode, snippet(body)))
	}
	return body, nil
}

// classifyTransportError separates timeouts from connectivity failures.
func classifyTransportError(endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Timeout("loki "+endpoint+" request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperror.Timeout("loki "+endpoint+" request timed out", err)
	}
	log.Error().Err(err).Str("endpoint", endpoint).Msg("Loki request failed")
	return apperror.BackendUnreachable("loki "+endpoint+" request failed", err)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSnippet {
		return s[:maxErrorSnippet] + "..."
	}
	return s
}
