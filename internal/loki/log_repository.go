package loki

import (
	"context"
	"fmt"
	"loki-mcp/internal/metrics"
	"loki-mcp/internal/model"
	"loki-mcp/internal/parser"
	"loki-mcp/internal/repository"

	"github.com/rs/zerolog/log"
)

type lokiLogRepository struct {
	client Client
	parser parser.ResultParser
}

func NewLokiLogRepository(client Client, resultParser parser.ResultParser) repository.LogRepository {
	return &lokiLogRepository{
		client: client,
		parser: resultParser,
	}
}

func (r *lokiLogRepository) QueryRange(ctx context.Context, q repository.RangeQuery) ([]model.LogRecord, error) {
	body, err := r.client.QueryRange(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query_range %s: %w", q.Query, err)
	}
	records, err := r.parser.ParseQueryRange(body)
	if err != nil {
		log.Error().Err(err).Str("query", q.Query).Msg("Failed to parse Loki query_range response")
		return nil, fmt.Errorf("query_range %s: %w", q.Query, err)
	}
	metrics.RecordsParsed.Observe(float64(len(records)))
	log.Debug().Str("query", q.Query).Int("records", len(records)).Msg("Loki range query successful")
	return records, nil
}

func (r *lokiLogRepository) LabelValues(ctx context.Context, q repository.LabelValuesQuery) ([]string, error) {
	body, err := r.client.LabelValues(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("label values %s: %w", q.Label, err)
	}
	values, err := r.parser.ParseLabelValues(body)
	if err != nil {
		log.Error().Err(err).Str("label", q.Label).Msg("Failed to parse Loki label values response")
		return nil, fmt.Errorf("label values %s: %w", q.Label, err)
	}
	return values, nil
}
