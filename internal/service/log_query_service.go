package service

import (
	"context"
	"loki-mcp/internal/analysis"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/logql"
	"loki-mcp/internal/model"
	"loki-mcp/internal/repository"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultHours = 1.0
	DefaultLimit = 100
)

// LogQueryService answers the semantic log questions exposed as tools.
// Every operation validates its input before contacting the backend.
type LogQueryService interface {
	ErrorSummary(ctx context.Context, req dto.ErrorSummaryRequest) (*dto.ErrorSummaryResponse, error)
	PodRestarts(ctx context.Context, req dto.PodRestartsRequest) (*dto.PodRestartsResponse, error)
	SearchLogs(ctx context.Context, req dto.LogSearchRequest) (*dto.LogSearchResponse, error)
	ListNamespaces(ctx context.Context, req dto.NamespaceListRequest) (*dto.NamespaceListResponse, error)
	ListPods(ctx context.Context, req dto.PodListRequest) (*dto.PodListResponse, error)
	PodLogs(ctx context.Context, req dto.PodLogsRequest) (*dto.PodLogsResponse, error)
}

type logQueryService struct {
	logRepo repository.LogRepository
	builder *logql.Builder
	now     func() time.Time
}

func NewLogQueryService(logRepo repository.LogRepository, builder *logql.Builder) LogQueryService {
	return &logQueryService{
		logRepo: logRepo,
		builder: builder,
		now:     time.Now,
	}
}

func hoursOrDefault(hours *float64) float64 {
	if hours == nil {
		return DefaultHours
	}
	return *hours
}

func limitOrDefault(limit *int) int {
	if limit == nil {
		return DefaultLimit
	}
	return *limit
}

func (s *logQueryService) ErrorSummary(ctx context.Context, req dto.ErrorSummaryRequest) (*dto.ErrorSummaryResponse, error) {
	hours := hoursOrDefault(req.Hours)
	filter, err := s.builder.NewFilter(req.Namespace, "", hours, s.builder.MaxLimit(), s.now())
	if err != nil {
		return nil, err
	}

	query := s.builder.ErrorQuery(filter)
	log.Info().
		Str("namespace", filter.Namespace).
		Float64("hours", hours).
		Str("query", query).
		Msg("Building error summary")

	records, err := s.logRepo.QueryRange(ctx, rangeQuery(query, filter, repository.DirectionBackward))
	if err != nil {
		return nil, err
	}

	summary := analysis.AggregateErrors(records, s.builder.PodLabel())
	return &dto.ErrorSummaryResponse{
		Namespace:      filter.Namespace,
		Hours:          hours,
		TotalErrors:    summary.TotalErrors,
		LevelBreakdown: summary.LevelBreakdown,
		AffectedPods:   summary.AffectedPods,
		SampleErrors:   summary.SampleErrors,
		Groups:         summary.Groups,
	}, nil
}

func (s *logQueryService) PodRestarts(ctx context.Context, req dto.PodRestartsRequest) (*dto.PodRestartsResponse, error) {
	hours := hoursOrDefault(req.Hours)
	filter, err := s.builder.NewFilter(req.Namespace, "", hours, s.builder.MaxLimit(), s.now())
	if err != nil {
		return nil, err
	}

	query := s.builder.RestartQuery(filter)
	log.Info().
		Str("namespace", filter.Namespace).
		Float64("hours", hours).
		Str("query", query).
		Msg("Detecting pod restarts")

	records, err := s.logRepo.QueryRange(ctx, rangeQuery(query, filter, repository.DirectionBackward))
	if err != nil {
		return nil, err
	}

	events := analysis.DetectRestarts(records, s.builder.PodLabel())
	total := 0
	for _, e := range events {
		total += e.Occurrences
	}
	return &dto.PodRestartsResponse{
		Namespace:          filter.Namespace,
		Hours:              hours,
		TotalRestartEvents: total,
		Events:             events,
	}, nil
}

func (s *logQueryService) SearchLogs(ctx context.Context, req dto.LogSearchRequest) (*dto.LogSearchResponse, error) {
	re, err := analysis.CompilePattern(req.Query)
	if err != nil {
		return nil, err
	}
	hours := hoursOrDefault(req.Hours)
	filter, err := s.builder.NewFilter(req.Namespace, "", hours, limitOrDefault(req.Limit), s.now())
	if err != nil {
		return nil, err
	}

	query := s.builder.SearchQuery(filter, req.Query)
	log.Info().
		Str("pattern", req.Query).
		Str("namespace", filter.Namespace).
		Float64("hours", hours).
		Int("limit", filter.Limit).
		Msg("Searching logs")

	// One line past the limit tells us whether more matches exist.
	rq := rangeQuery(query, filter, repository.DirectionForward)
	if rq.Limit < s.builder.MaxLimit() {
		rq.Limit++
	}
	records, err := s.logRepo.QueryRange(ctx, rq)
	if err != nil {
		return nil, err
	}

	matches, total := analysis.Search(records, re, filter.Limit)
	return &dto.LogSearchResponse{
		Query:     req.Query,
		Namespace: filter.Namespace,
		Hours:     hours,
		PodLabel:  s.builder.PodLabel(),
		Truncated: total > len(matches),
		Logs:      matches,
	}, nil
}

func (s *logQueryService) ListNamespaces(ctx context.Context, req dto.NamespaceListRequest) (*dto.NamespaceListResponse, error) {
	filter, err := s.builder.NewFilter("", "", hoursOrDefault(req.Hours), 1, s.now())
	if err != nil {
		return nil, err
	}

	values, err := s.logRepo.LabelValues(ctx, repository.LabelValuesQuery{
		Label: model.LabelNamespace,
		Start: filter.Since,
		End:   filter.Until,
	})
	if err != nil {
		return nil, err
	}

	namespaces := uniqueSorted(values)
	log.Info().Int("count", len(namespaces)).Msg("Listed namespaces")
	return &dto.NamespaceListResponse{Namespaces: namespaces}, nil
}

func (s *logQueryService) ListPods(ctx context.Context, req dto.PodListRequest) (*dto.PodListResponse, error) {
	filter, err := s.builder.NewFilter(req.Namespace, "", hoursOrDefault(req.Hours), 1, s.now())
	if err != nil {
		return nil, err
	}

	values, err := s.logRepo.LabelValues(ctx, repository.LabelValuesQuery{
		Label: s.builder.PodLabel(),
		Query: s.builder.NamespaceScope(filter.Namespace),
		Start: filter.Since,
		End:   filter.Until,
	})
	if err != nil {
		return nil, err
	}

	pods := uniqueSorted(values)
	log.Info().Str("namespace", filter.Namespace).Int("count", len(pods)).Msg("Listed pods")
	return &dto.PodListResponse{Namespace: filter.Namespace, Pods: pods}, nil
}

func (s *logQueryService) PodLogs(ctx context.Context, req dto.PodLogsRequest) (*dto.PodLogsResponse, error) {
	podName := strings.TrimSpace(req.PodName)
	if podName == "" {
		return nil, apperror.InvalidInput("pod_name is required")
	}
	hours := hoursOrDefault(req.Hours)
	filter, err := s.builder.NewFilter(req.Namespace, podName, hours, limitOrDefault(req.Limit), s.now())
	if err != nil {
		return nil, err
	}

	query := s.builder.PodLogsQuery(filter, req.Contains)
	log.Info().
		Str("pod", podName).
		Str("namespace", filter.Namespace).
		Float64("hours", hours).
		Int("limit", filter.Limit).
		Msg("Fetching pod logs")

	// Newest lines first so the limit keeps the most recent window; the parser
	// hands them back in ascending order.
	records, err := s.logRepo.QueryRange(ctx, rangeQuery(query, filter, repository.DirectionBackward))
	if err != nil {
		return nil, err
	}

	logs := make([]model.LogRecord, 0, len(records))
	for _, rec := range records {
		if logql.MatchesLabel(podName, rec.PodFrom(s.builder.PodLabel())) {
			logs = append(logs, rec)
		}
	}
	if len(logs) > filter.Limit {
		logs = logs[len(logs)-filter.Limit:]
	}

	return &dto.PodLogsResponse{
		PodName:   podName,
		Namespace: filter.Namespace,
		Hours:     hours,
		Logs:      logs,
	}, nil
}

func rangeQuery(query string, filter dto.QueryFilter, direction repository.Direction) repository.RangeQuery {
	return repository.RangeQuery{
		Query:     query,
		Start:     filter.Since,
		End:       filter.Until,
		Limit:     filter.Limit,
		Direction: direction,
	}
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
