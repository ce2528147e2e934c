package logql

import (
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/model"
	"loki-mcp/internal/util"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPodLabel = model.LabelPod
	DefaultMaxLimit = 5000
	wildcard        = "*"
)

// Builder turns semantic filters into LogQL expressions.
type Builder struct {
	podLabel string
	maxLimit int
}

func NewBuilder(podLabel string, maxLimit int) *Builder {
	if podLabel == "" {
		podLabel = DefaultPodLabel
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &Builder{podLabel: podLabel, maxLimit: maxLimit}
}

func (b *Builder) PodLabel() string {
	return b.podLabel
}

func (b *Builder) MaxLimit() int {
	return b.maxLimit
}

// NewFilter validates the raw tool parameters and resolves the time window against now.
// Limits above the configured maximum are clamped.
func (b *Builder) NewFilter(namespace, podPattern string, hours float64, limit int, now time.Time) (dto.QueryFilter, error) {
	since, until, err := util.WindowFromHours(now, hours)
	if err != nil {
		return dto.QueryFilter{}, apperror.InvalidInput("%s", err.Error())
	}
	if limit <= 0 {
		return dto.QueryFilter{}, apperror.InvalidInput("limit must be positive, got %d", limit)
	}
	if limit > b.maxLimit {
		limit = b.maxLimit
	}
	return dto.QueryFilter{
		Namespace:  strings.TrimSpace(namespace),
		PodPattern: strings.TrimSpace(podPattern),
		Since:      since,
		Until:      until,
		Limit:      limit,
	}, nil
}

// Selector returns the stream selector for f. With neither namespace nor pod it
// matches every stream carrying a namespace label.
func (b *Builder) Selector(f dto.QueryFilter) string {
	matchers := make([]string, 0, 2)
	if f.PodPattern != "" {
		matchers = append(matchers, LabelMatcher(b.podLabel, f.PodPattern))
	}
	if f.Namespace != "" {
		matchers = append(matchers, LabelMatcher(model.LabelNamespace, f.Namespace))
	}
	if len(matchers) == 0 {
		matchers = append(matchers, model.LabelNamespace+`=~".+"`)
	}
	return "{" + strings.Join(matchers, ",") + "}"
}

func (b *Builder) ErrorQuery(f dto.QueryFilter) string {
	return b.Selector(f) + " |~ " + strconv.Quote(VocabularyRegex(ErrorVocabulary))
}

func (b *Builder) RestartQuery(f dto.QueryFilter) string {
	return b.Selector(f) + " |~ " + strconv.Quote(VocabularyRegex(RestartVocabulary))
}

// SearchQuery applies an already-validated RE2 pattern as a line filter.
func (b *Builder) SearchQuery(f dto.QueryFilter, pattern string) string {
	return b.Selector(f) + " |~ " + strconv.Quote(pattern)
}

// PodLogsQuery selects the pod's streams, optionally narrowed by a content pattern.
func (b *Builder) PodLogsQuery(f dto.QueryFilter, contains string) string {
	if contains == "" {
		return b.Selector(f)
	}
	return b.Selector(f) + " " + ContentFilter(contains)
}

// NamespaceScope is the selector used to restrict label-values lookups to one namespace.
func (b *Builder) NamespaceScope(namespace string) string {
	if namespace == "" {
		return ""
	}
	return "{" + LabelMatcher(model.LabelNamespace, namespace) + "}"
}

// HasWildcard reports whether pattern contains the "*" wildcard.
func HasWildcard(pattern string) bool {
	return strings.Contains(pattern, wildcard)
}

// WildcardToRegex escapes literal segments and maps "*" to ".*". The result is
// unanchored; Loki anchors label regexes itself.
func WildcardToRegex(pattern string) string {
	segments := strings.Split(pattern, wildcard)
	for i, s := range segments {
		segments[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(segments, ".*")
}

// LabelMatcher returns label="value" for literal patterns and label=~"regex" for wildcards.
func LabelMatcher(label, pattern string) string {
	if HasWildcard(pattern) {
		return label + "=~" + strconv.Quote(WildcardToRegex(pattern))
	}
	return label + "=" + strconv.Quote(pattern)
}

// ContentFilter returns a line filter: |= for literal substrings, |~ for wildcards.
func ContentFilter(pattern string) string {
	if HasWildcard(pattern) {
		return "|~ " + strconv.Quote(WildcardToRegex(pattern))
	}
	return "|= " + strconv.Quote(pattern)
}

// MatchesLabel evaluates pattern against a label value with Loki's full-match semantics.
func MatchesLabel(pattern, value string) bool {
	if !HasWildcard(pattern) {
		return pattern == value
	}
	return regexp.MustCompile("^(?:" + WildcardToRegex(pattern) + ")$").MatchString(value)
}
