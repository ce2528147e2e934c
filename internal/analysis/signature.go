package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxSignatureRunes = 120

// signatureRule replaces one class of variable token with a stable placeholder.
// Rules run in order: broader shapes (UUIDs, timestamps) before bare numbers.
type signatureRule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var signatureRules = []signatureRule{
	{regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`), "<UUID>"},
	{regexp.MustCompile(`\d{4}[-/]\d{2}[-/]\d{2}[T\s]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?`), "<TIME>"},
	{regexp.MustCompile(`\b\d{2}:\d{2}:\d{2}(?:[.,]\d+)?\b`), "<TIME>"},
	{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d+)?\b`), "<IP>"},
	{regexp.MustCompile(`\b0x[0-9a-fA-F]+\b`), "<HEX>"},
	{regexp.MustCompile(`\b[0-9a-fA-F]{16,64}\b`), "<HEX>"},
	{regexp.MustCompile(`\b\d+(?:\.\d+)?(?:ns|us|µs|ms|s|m|h)\b`), "<DUR>"},
	{regexp.MustCompile(`"[^"]*"`), "<STR>"},
	{regexp.MustCompile(`'[^']*'`), "<STR>"},
	{regexp.MustCompile(`(?:^|\s)/[^\s:]+`), " <PATH>"},
	{regexp.MustCompile(`\d+(?:\.\d+)?`), "<NUM>"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Signature normalizes an error message into a grouping key by replacing
// variable tokens with placeholders. Same input always yields the same key.
func Signature(message string) string {
	s := message
	for _, rule := range signatureRules {
		s = rule.pattern.ReplaceAllString(s, rule.placeholder)
	}
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	return truncateRunes(s, maxSignatureRunes)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
