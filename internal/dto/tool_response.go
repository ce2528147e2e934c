package dto

import (
	"loki-mcp/internal/model"
	"time"
)

type ErrorSummaryResponse struct {
	Namespace      string             `json:"namespace"`
	Hours          float64            `json:"hours"`
	TotalErrors    int                `json:"totalErrors"`
	LevelBreakdown map[string]int     `json:"levelBreakdown"`
	AffectedPods   []string           `json:"affectedPods"`
	SampleErrors   []string           `json:"sampleErrors"`
	Groups         []model.ErrorGroup `json:"groups"`
}

type PodRestartsResponse struct {
	Namespace          string               `json:"namespace"`
	Hours              float64              `json:"hours"`
	TotalRestartEvents int                  `json:"totalRestartEvents"`
	Events             []model.RestartEvent `json:"events"`
}

type LogSearchResponse struct {
	Query     string            `json:"query"`
	Namespace string            `json:"namespace"`
	Hours     float64           `json:"hours"`
	PodLabel  string            `json:"podLabel"`
	Truncated bool              `json:"truncated"`
	Logs      []model.LogRecord `json:"logs"`
}

type NamespaceListResponse struct {
	Namespaces []string `json:"namespaces"`
}

type PodListResponse struct {
	Namespace string   `json:"namespace"`
	Pods      []string `json:"pods"`
}

type PodLogsResponse struct {
	PodName   string            `json:"podName"`
	Namespace string            `json:"namespace"`
	Hours     float64           `json:"hours"`
	Logs      []model.LogRecord `json:"logs"`
}

// ToolCallResponse pairs the typed result of a tool with its text rendering.
type ToolCallResponse struct {
	Tool       string      `json:"tool"`
	CallID     string      `json:"callId"`
	Text       string      `json:"text"`
	Result     interface{} `json:"result"`
	DurationMs int64       `json:"durationMs"`
	FinishedAt time.Time   `json:"finishedAt"`
}
