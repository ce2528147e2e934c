package analysis

import (
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/model"
	"regexp"
	"strings"
)

// CompilePattern compiles a user-supplied RE2 pattern.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, apperror.InvalidInput("search pattern cannot be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindInvalidInput, Detail: "invalid search pattern", Err: err}
	}
	return re, nil
}

// Search returns the records whose message matches re, in input order, cut to
// limit. total is the number of matches before truncation.
func Search(records []model.LogRecord, re *regexp.Regexp, limit int) (matches []model.LogRecord, total int) {
	matches = make([]model.LogRecord, 0)
	for _, rec := range records {
		if !re.MatchString(rec.Message) {
			continue
		}
		total++
		if len(matches) < limit {
			matches = append(matches, rec)
		}
	}
	return matches, total
}
