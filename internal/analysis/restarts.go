package analysis

import (
	"loki-mcp/internal/model"
	"sort"
	"strings"
)

const (
	ReasonOOMKilled        = "OOMKilled"
	ReasonCrashLoopBackOff = "CrashLoopBackOff"
	ReasonBackOff          = "BackOff"
	ReasonError            = "Error"
	ReasonRestarted        = "Restarted"
)

// RestartRule maps lower-case phrases to a restart reason. When Context is
// set, the line must also contain one of the context phrases.
type RestartRule struct {
	Reason  string
	Phrases []string
	Context []string
}

// RestartRules is evaluated in order; the first matching rule wins.
var RestartRules = []RestartRule{
	{Reason: ReasonOOMKilled, Phrases: []string{"oomkilled", "out of memory", "oom-kill", "oom killer"}},
	{Reason: ReasonCrashLoopBackOff, Phrases: []string{"crashloopbackoff"}},
	{Reason: ReasonBackOff, Phrases: []string{"back-off restarting"}},
	{Reason: ReasonBackOff, Phrases: []string{"back-off", "backoff"}, Context: []string{"container", "pod"}},
	{Reason: ReasonError, Phrases: []string{"error"}, Context: []string{"restart", "exited", "terminated"}},
	{Reason: ReasonRestarted, Phrases: []string{"restart"}},
}

// ClassifyRestart returns the reason of the first rule matching message.
func ClassifyRestart(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, rule := range RestartRules {
		if !containsAny(lower, rule.Phrases) {
			continue
		}
		if len(rule.Context) > 0 && !containsAny(lower, rule.Context) {
			continue
		}
		return rule.Reason, true
	}
	return "", false
}

type restartKey struct {
	pod       string
	namespace string
	reason    string
}

// DetectRestarts collapses restart signal lines into one event per
// (pod, namespace, reason). The pod is read from podLabel. Records without
// pod or namespace labels are skipped.
func DetectRestarts(records []model.LogRecord, podLabel string) []model.RestartEvent {
	index := make(map[restartKey]int)
	events := make([]model.RestartEvent, 0)

	for _, rec := range records {
		pod, namespace := rec.PodFrom(podLabel), rec.Namespace()
		if pod == "" || namespace == "" {
			continue
		}
		reason, ok := ClassifyRestart(rec.Message)
		if !ok {
			continue
		}

		key := restartKey{pod: pod, namespace: namespace, reason: reason}
		if i, seen := index[key]; seen {
			events[i].Occurrences++
			if rec.Timestamp.After(events[i].LastSeen) {
				events[i].LastSeen = rec.Timestamp
			}
			continue
		}
		index[key] = len(events)
		events = append(events, model.RestartEvent{
			Pod:           pod,
			Namespace:     namespace,
			Reason:        reason,
			Occurrences:   1,
			LastSeen:      rec.Timestamp,
			SampleMessage: truncateRunes(rec.Message, maxSampleRunes),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		if !a.LastSeen.Equal(b.LastSeen) {
			return a.LastSeen.After(b.LastSeen)
		}
		return lessStrings([]string{a.Pod, a.Namespace, a.Reason}, []string{b.Pod, b.Namespace, b.Reason})
	})
	return events
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func lessStrings(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
