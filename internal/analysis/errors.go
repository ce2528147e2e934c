package analysis

import (
	"loki-mcp/internal/logql"
	"loki-mcp/internal/model"
	"sort"
)

const (
	maxSamplePods   = 5
	maxSampleErrors = 10
	maxSampleRunes  = 200
)

// ErrorSummary is the aggregated view of one error query window.
type ErrorSummary struct {
	TotalErrors    int
	LevelBreakdown map[string]int
	AffectedPods   []string
	SampleErrors   []string
	Groups         []model.ErrorGroup
}

// AggregateErrors groups error lines by signature. Lines carrying a restart
// phrase are left to DetectRestarts, and lines without error vocabulary are
// dropped. Pods are read from podLabel. Groups are ordered by count desc,
// then signature asc.
func AggregateErrors(records []model.LogRecord, podLabel string) ErrorSummary {
	summary := ErrorSummary{
		LevelBreakdown: make(map[string]int),
		AffectedPods:   []string{},
		SampleErrors:   []string{},
		Groups:         []model.ErrorGroup{},
	}
	index := make(map[string]int)
	pods := make(map[string]struct{})
	groupPods := make(map[string]map[string]struct{})

	for _, rec := range records {
		if _, isRestart := ClassifyRestart(rec.Message); isRestart {
			continue
		}
		if !logql.ContainsErrorWord(rec.Message) {
			continue
		}

		level := logql.ErrorLevel(rec.Message)
		summary.TotalErrors++
		summary.LevelBreakdown[level]++
		if len(summary.SampleErrors) < maxSampleErrors {
			summary.SampleErrors = append(summary.SampleErrors, truncateRunes(rec.Message, maxSampleRunes))
		}

		pod := rec.PodFrom(podLabel)
		if pod != "" {
			pods[pod] = struct{}{}
		}

		sig := Signature(rec.Message)
		i, seen := index[sig]
		if !seen {
			i = len(summary.Groups)
			index[sig] = i
			groupPods[sig] = make(map[string]struct{})
			summary.Groups = append(summary.Groups, model.ErrorGroup{
				Signature:     sig,
				Level:         level,
				FirstSeen:     rec.Timestamp,
				LastSeen:      rec.Timestamp,
				SampleMessage: truncateRunes(rec.Message, maxSampleRunes),
			})
		}

		g := &summary.Groups[i]
		g.Count++
		if rec.Timestamp.Before(g.FirstSeen) {
			g.FirstSeen = rec.Timestamp
		}
		if rec.Timestamp.After(g.LastSeen) {
			g.LastSeen = rec.Timestamp
		}
		if pod != "" && len(groupPods[sig]) < maxSamplePods {
			groupPods[sig][pod] = struct{}{}
		}
	}

	for i := range summary.Groups {
		summary.Groups[i].SamplePods = sortedKeys(groupPods[summary.Groups[i].Signature])
	}
	summary.AffectedPods = sortedKeys(pods)

	sort.Slice(summary.Groups, func(i, j int) bool {
		a, b := summary.Groups[i], summary.Groups[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Signature < b.Signature
	})
	return summary
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
