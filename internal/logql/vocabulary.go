package logql

import (
	"regexp"
	"strings"
)

// ErrorVocabulary is the fixed set of words that mark a line as an error.
var ErrorVocabulary = []string{
	"error",
	"exception",
	"fail",
	"panic",
	"fatal",
}

// RestartVocabulary selects candidate lines for restart detection. It must
// cover every phrase of the restart reason table.
var RestartVocabulary = []string{
	"oomkilled",
	"out of memory",
	"oom-kill",
	"oom killer",
	"crashloopbackoff",
	"back-off",
	"backoff",
	"restart",
	"exited",
	"terminated",
}

// VocabularyRegex builds a case-insensitive alternation over words.
func VocabularyRegex(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return "(?i)(" + strings.Join(quoted, "|") + ")"
}

var errorVocabularyRe = regexp.MustCompile(VocabularyRegex(ErrorVocabulary))

// ContainsErrorWord reports whether message contains any error vocabulary word.
func ContainsErrorWord(message string) bool {
	return errorVocabularyRe.MatchString(message)
}

// ErrorLevel returns the upper-cased first error vocabulary word in message, or "".
func ErrorLevel(message string) string {
	m := errorVocabularyRe.FindString(message)
	return strings.ToUpper(m)
}
