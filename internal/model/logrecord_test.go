package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogRecordPodFallsBackToPodName(t *testing.T) {
	assert.Equal(t, "ollama-0", LogRecord{Labels: map[string]string{"pod": "ollama-0", "pod_name": "other"}}.Pod())
	assert.Equal(t, "legacy-1", LogRecord{Labels: map[string]string{"pod_name": "legacy-1"}}.Pod())
	assert.Equal(t, "", LogRecord{}.Pod())
	assert.Equal(t, "", LogRecord{}.Namespace())
}

func TestLogRecordPodFrom(t *testing.T) {
	r := LogRecord{Labels: map[string]string{"k8s_pod_name": "ollama-0", "pod": "fallback-0"}}
	assert.Equal(t, "ollama-0", r.PodFrom("k8s_pod_name"))
	assert.Equal(t, "fallback-0", r.PodFrom("missing"))
	assert.Equal(t, "fallback-0", r.PodFrom(""))
	assert.Equal(t, "", LogRecord{}.PodFrom("k8s_pod_name"))
}
