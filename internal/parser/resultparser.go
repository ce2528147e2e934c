package parser

import (
	"encoding/json"
	"fmt"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/model"
	"loki-mcp/internal/util"
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	statusSuccess     = "success"
	resultTypeStreams = "streams"
)

// QueryRangeResponse mirrors the body of /loki/api/v1/query_range. Pointer and
// nil-able fields distinguish "missing" from "empty".
type QueryRangeResponse struct {
	Status string          `json:"status"`
	Data   *QueryRangeData `json:"data"`
}

type QueryRangeData struct {
	ResultType string         `json:"resultType"`
	Result     []StreamResult `json:"result"`
}

type StreamResult struct {
	Stream map[string]string   `json:"stream"`
	Values [][]json.RawMessage `json:"values"`
}

// LabelValuesResponse mirrors the body of /loki/api/v1/label/{name}/values.
type LabelValuesResponse struct {
	Status string    `json:"status"`
	Data   *[]string `json:"data"`
}

// ResultParser converts raw Loki responses into structured values.
type ResultParser interface {
	ParseQueryRange(body []byte) ([]model.LogRecord, error)
	ParseLabelValues(body []byte) ([]string, error)
}

type lokiResultParser struct{}

func NewLokiResultParser() ResultParser {
	return &lokiResultParser{}
}

// ParseQueryRange flattens every stream into one slice ordered by timestamp
// ascending. Any malformed stream or value fails the whole response.
func (p *lokiResultParser) ParseQueryRange(body []byte) ([]model.LogRecord, error) {
	var resp QueryRangeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperror.ParseError("query_range body is not valid JSON", err)
	}
	if resp.Status != "" && resp.Status != statusSuccess {
		return nil, apperror.BackendError(0, fmt.Sprintf("query_range returned status %q", resp.Status))
	}
	if resp.Data == nil {
		return nil, apperror.ParseError("query_range response has no data field", nil)
	}
	if resp.Data.ResultType != resultTypeStreams {
		return nil, apperror.ParseError(fmt.Sprintf("unexpected resultType %q, want %q", resp.Data.ResultType, resultTypeStreams), nil)
	}

	records := make([]model.LogRecord, 0)
	for i, stream := range resp.Data.Result {
		if stream.Stream == nil {
			return nil, apperror.ParseError(fmt.Sprintf("stream %d has no labels", i), nil)
		}
		if stream.Values == nil {
			return nil, apperror.ParseError(fmt.Sprintf("stream %d has no values", i), nil)
		}
		for j, value := range stream.Values {
			record, err := parseValue(stream.Stream, value)
			if err != nil {
				return nil, apperror.ParseError(fmt.Sprintf("stream %d value %d", i, j), err)
			}
			records = append(records, record)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	log.Debug().Int("streams", len(resp.Data.Result)).Int("records", len(records)).Msg("Parsed query_range response")
	return records, nil
}

// parseValue decodes one [timestamp_ns, line, (structured metadata)] tuple.
func parseValue(labels map[string]string, value []json.RawMessage) (model.LogRecord, error) {
	if len(value) < 2 {
		return model.LogRecord{}, fmt.Errorf("expected [timestamp, line], got %d elements", len(value))
	}
	var tsRaw, line string
	if err := json.Unmarshal(value[0], &tsRaw); err != nil {
		return model.LogRecord{}, fmt.Errorf("timestamp is not a string: %w", err)
	}
	if err := json.Unmarshal(value[1], &line); err != nil {
		return model.LogRecord{}, fmt.Errorf("line is not a string: %w", err)
	}
	ts, err := util.ParseUnixNano(tsRaw)
	if err != nil {
		return model.LogRecord{}, err
	}
	return model.LogRecord{
		Timestamp: ts,
		Labels:    labels,
		Message:   line,
	}, nil
}

func (p *lokiResultParser) ParseLabelValues(body []byte) ([]string, error) {
	var resp LabelValuesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperror.ParseError("label values body is not valid JSON", err)
	}
	if resp.Status != "" && resp.Status != statusSuccess {
		return nil, apperror.BackendError(0, fmt.Sprintf("label values returned status %q", resp.Status))
	}
	if resp.Data == nil {
		return nil, apperror.ParseError("label values response has no data field", nil)
	}
	return *resp.Data, nil
}
