package model

import "time"

const (
	LabelNamespace = "namespace"
	LabelPod       = "pod"
	LabelPodName   = "pod_name"
	LabelContainer = "container"
)

// LogRecord is one log line as returned by Loki.
type LogRecord struct {
	Timestamp time.Time         `json:"timestamp"`
	Labels    map[string]string `json:"labels"`
	Message   string            `json:"message"`
}

// Namespace returns the namespace label, or "" when absent.
func (r LogRecord) Namespace() string {
	return r.Labels[LabelNamespace]
}

// Pod returns the pod label. Promtail ships it as "pod"; older scrape configs use "pod_name".
func (r LogRecord) Pod() string {
	if pod := r.Labels[LabelPod]; pod != "" {
		return pod
	}
	return r.Labels[LabelPodName]
}

// PodFrom reads the pod from label, falling back to Pod when it is absent.
func (r LogRecord) PodFrom(label string) string {
	if pod := r.Labels[label]; label != "" && pod != "" {
		return pod
	}
	return r.Pod()
}
