package tools

import (
	"fmt"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/model"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	maxRenderedPods      = 10
	maxRenderedSamples   = 3
	maxRenderedGroups    = 10
	maxRenderedSearchPod = 5
	maxRenderedPodLines  = 3
	maxRenderedTail      = 20
	maxRenderedReason    = 100
)

func hoursLabel(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func scopeLabel(namespace string) string {
	if namespace == "" {
		return "all namespaces"
	}
	return "namespace " + namespace
}

func cut(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func RenderErrorSummary(resp *dto.ErrorSummaryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error Summary for %s (last %s hour(s)):\n", scopeLabel(resp.Namespace), hoursLabel(resp.Hours))
	fmt.Fprintf(&b, "Total Errors: %d\n", resp.TotalErrors)

	if len(resp.LevelBreakdown) > 0 {
		b.WriteString("Error Breakdown:\n")
		levels := make([]string, 0, len(resp.LevelBreakdown))
		for level := range resp.LevelBreakdown {
			levels = append(levels, level)
		}
		sort.Strings(levels)
		for _, level := range levels {
			fmt.Fprintf(&b, "  %s: %d\n", level, resp.LevelBreakdown[level])
		}
	}

	if len(resp.AffectedPods) > 0 {
		pods := resp.AffectedPods
		if len(pods) > maxRenderedPods {
			pods = pods[:maxRenderedPods]
		}
		fmt.Fprintf(&b, "Affected Pods: %s\n", strings.Join(pods, ", "))
	}

	if len(resp.Groups) > 0 {
		b.WriteString("Top Error Groups:\n")
		for i, g := range resp.Groups {
			if i == maxRenderedGroups {
				break
			}
			fmt.Fprintf(&b, "  [%d x %s] %s\n", g.Count, g.Level, g.Signature)
		}
	}

	if len(resp.SampleErrors) > 0 {
		b.WriteString("Sample Error Messages:\n")
		for i, msg := range resp.SampleErrors {
			if i == maxRenderedSamples {
				break
			}
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return b.String()
}

func RenderPodRestarts(resp *dto.PodRestartsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pod Restart Summary for %s (last %s hour(s)):\n", scopeLabel(resp.Namespace), hoursLabel(resp.Hours))
	fmt.Fprintf(&b, "Total Restart Events: %d\n", resp.TotalRestartEvents)

	if len(resp.Events) > 0 {
		b.WriteString("Pods with Restarts:\n")
		for i, e := range resp.Events {
			if i == maxRenderedPods {
				break
			}
			fmt.Fprintf(&b, "  %s/%s: %d %s event(s), last at %s\n",
				e.Namespace, e.Pod, e.Occurrences, e.Reason, e.LastSeen.Format(time.RFC3339))
			fmt.Fprintf(&b, "    Sample: %s\n", cut(e.SampleMessage, maxRenderedReason))
		}
	}
	return b.String()
}

// RenderLogSearch groups matches by pod in order of first appearance.
func RenderLogSearch(resp *dto.LogSearchResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search Results for '%s' in %s (last %s hour(s)):\n", resp.Query, scopeLabel(resp.Namespace), hoursLabel(resp.Hours))
	fmt.Fprintf(&b, "Total Matches: %d", len(resp.Logs))
	if resp.Truncated {
		b.WriteString("+ (limit reached)")
	}
	b.WriteString("\n\n")

	order := make([]string, 0)
	byPod := make(map[string][]model.LogRecord)
	for _, rec := range resp.Logs {
		pod := rec.PodFrom(resp.PodLabel)
		if pod == "" {
			pod = "unknown"
		}
		if _, ok := byPod[pod]; !ok {
			order = append(order, pod)
		}
		byPod[pod] = append(byPod[pod], rec)
	}

	for i, pod := range order {
		if i == maxRenderedSearchPod {
			break
		}
		fmt.Fprintf(&b, "Pod: %s\n", pod)
		for j, rec := range byPod[pod] {
			if j == maxRenderedPodLines {
				break
			}
			fmt.Fprintf(&b, "  [%s] %s\n", rec.Timestamp.Format(time.RFC3339Nano), rec.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func RenderNamespaces(resp *dto.NamespaceListResponse) string {
	var b strings.Builder
	b.WriteString("Namespaces with logs:\n")
	for _, ns := range resp.Namespaces {
		fmt.Fprintf(&b, "  - %s\n", ns)
	}
	return b.String()
}

func RenderPods(resp *dto.PodListResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pods with logs in %s:\n", scopeLabel(resp.Namespace))
	for _, pod := range resp.Pods {
		fmt.Fprintf(&b, "  - %s\n", pod)
	}
	return b.String()
}

// RenderPodLogs shows the tail of the returned lines.
func RenderPodLogs(resp *dto.PodLogsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Logs for pod '%s' (last %s hour(s)):\n", resp.PodName, hoursLabel(resp.Hours))
	fmt.Fprintf(&b, "Total Lines: %d\n\n", len(resp.Logs))

	logs := resp.Logs
	if len(logs) > maxRenderedTail {
		logs = logs[len(logs)-maxRenderedTail:]
	}
	for _, rec := range logs {
		fmt.Fprintf(&b, "[%s] %s\n", rec.Timestamp.Format(time.RFC3339Nano), rec.Message)
	}
	return b.String()
}
