package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/metrics"
	"loki-mcp/internal/service"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrUnknownTool = errors.New("unknown tool")

// Result is a typed tool output together with its text rendering.
type Result struct {
	Data interface{}
	Text string
}

type Handler func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error)

// Definition describes one tool: its name, the JSON schema of its arguments
// and the handler decoding them into a typed request.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Handler     Handler                `json:"-"`
}

func schema(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

var (
	namespaceProp = prop("string", "Filter to a namespace (empty = all namespaces)")
	hoursProp     = prop("number", "Look back this many hours (default: 1)")
	limitProp     = prop("integer", "Maximum number of log lines to return (default: 100)")
)

// Definitions is the static tool table.
var Definitions = []Definition{
	{
		Name:        "get_error_summary",
		Description: "Summarize errors in the cluster: totals, level breakdown, affected pods and error groups by signature.",
		InputSchema: schema(nil, map[string]interface{}{
			"namespace": namespaceProp,
			"hours":     hoursProp,
		}),
		Handler: func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error) {
			var req dto.ErrorSummaryRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			resp, err := svc.ErrorSummary(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Data: resp, Text: RenderErrorSummary(resp)}, nil
		},
	},
	{
		Name:        "find_pod_restarts",
		Description: "Find pods that restarted or crashed recently (OOMKilled, CrashLoopBackOff, back-off, exits).",
		InputSchema: schema(nil, map[string]interface{}{
			"namespace": namespaceProp,
			"hours":     hoursProp,
		}),
		Handler: func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error) {
			var req dto.PodRestartsRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			resp, err := svc.PodRestarts(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Data: resp, Text: RenderPodRestarts(resp)}, nil
		},
	},
	{
		Name:        "search_logs",
		Description: "Search log lines with a regular expression.",
		InputSchema: schema([]string{"query"}, map[string]interface{}{
			"query":     prop("string", "Regex pattern to search for"),
			"namespace": namespaceProp,
			"hours":     hoursProp,
			"limit":     limitProp,
		}),
		Handler: func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error) {
			var req dto.LogSearchRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			resp, err := svc.SearchLogs(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Data: resp, Text: RenderLogSearch(resp)}, nil
		},
	},
	{
		Name:        "list_namespaces",
		Description: "List namespaces that have logs.",
		InputSchema: schema(nil, map[string]interface{}{
			"hours": hoursProp,
		}),
		Handler: func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error) {
			var req dto.NamespaceListRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			resp, err := svc.ListNamespaces(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Data: resp, Text: RenderNamespaces(resp)}, nil
		},
	},
	{
		Name:        "list_pods",
		Description: "List pods that have logs, optionally within one namespace.",
		InputSchema: schema(nil, map[string]interface{}{
			"namespace": namespaceProp,
			"hours":     hoursProp,
		}),
		Handler: func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error) {
			var req dto.PodListRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			resp, err := svc.ListPods(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Data: resp, Text: RenderPods(resp)}, nil
		},
	},
	{
		Name:        "get_pod_logs",
		Description: "Get recent logs for a pod. pod_name may contain * wildcards, e.g. ollama*.",
		InputSchema: schema([]string{"pod_name"}, map[string]interface{}{
			"pod_name":  prop("string", "Pod name or wildcard pattern"),
			"namespace": namespaceProp,
			"contains":  prop("string", "Only lines containing this text (* wildcards allowed)"),
			"hours":     hoursProp,
			"limit":     limitProp,
		}),
		Handler: func(ctx context.Context, svc service.LogQueryService, args map[string]interface{}) (*Result, error) {
			var req dto.PodLogsRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			resp, err := svc.PodLogs(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Data: resp, Text: RenderPodLogs(resp)}, nil
		},
	},
}

// decodeArgs maps loosely typed tool arguments onto a request struct.
// Unknown fields and type mismatches are input errors.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return &apperror.Error{Kind: apperror.KindInvalidInput, Detail: "arguments are not valid JSON", Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return &apperror.Error{Kind: apperror.KindInvalidInput, Detail: "invalid arguments", Err: err}
	}
	return nil
}

type Registry interface {
	List() []Definition
	Call(ctx context.Context, name string, args map[string]interface{}) (*dto.ToolCallResponse, error)
}

type registry struct {
	svc   service.LogQueryService
	tools map[string]Definition
}

func NewRegistry(svc service.LogQueryService) Registry {
	tools := make(map[string]Definition, len(Definitions))
	for _, d := range Definitions {
		tools[d.Name] = d
	}
	return &registry{svc: svc, tools: tools}
}

func (r *registry) List() []Definition {
	return Definitions
}

func (r *registry) Call(ctx context.Context, name string, args map[string]interface{}) (*dto.ToolCallResponse, error) {
	def, ok := r.tools[name]
	if !ok {
		metrics.ToolCallsTotal.WithLabelValues("unknown", "not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	callID := uuid.NewString()
	start := time.Now()
	log.Info().Str("tool", name).Str("call_id", callID).Msg("Executing tool")

	result, err := def.Handler(ctx, r.svc, args)
	duration := time.Since(start)
	metrics.ToolCallDuration.WithLabelValues(name).Observe(duration.Seconds())
	metrics.ToolCallsTotal.WithLabelValues(name, metrics.Outcome(err)).Inc()

	if err != nil {
		log.Error().Err(err).
			Str("tool", name).
			Str("call_id", callID).
			Str("kind", string(apperror.KindOf(err))).
			Dur("duration", duration).
			Msg("Tool execution failed")
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}

	log.Info().Str("tool", name).Str("call_id", callID).Dur("duration", duration).Msg("Tool executed successfully")
	return &dto.ToolCallResponse{
		Tool:       name,
		CallID:     callID,
		Text:       result.Text,
		Result:     result.Data,
		DurationMs: duration.Milliseconds(),
		FinishedAt: time.Now().UTC(),
	}, nil
}
