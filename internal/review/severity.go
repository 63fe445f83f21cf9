package review

import (
	"regexp"
	"strings"
)

// Severity is the tag the model puts in front of each issue.
type Severity string

const (
	SeverityCritical   Severity = "CRITICAL"
	SeverityWarning    Severity = "WARNING"
	SeveritySuggestion Severity = "SUGGESTION"
)

// Severities in descending order.
var Severities = []Severity{SeverityCritical, SeverityWarning, SeveritySuggestion}

// Summary counts the issue headings found in a review text.
type Summary struct {
	Critical   int `json:"critical"`
	Warning    int `json:"warning"`
	Suggestion int `json:"suggestion"`
}

// Total is the number of issues counted.
func (s Summary) Total() int { return s.Critical + s.Warning + s.Suggestion }

var issueHeading = regexp.MustCompile(`(?m)^\s*(?:[-*]\s*)?\**\[(CRITICAL|WARNING|SUGGESTION)\]`)

// Summarize counts "[SEVERITY] Line X - Category" headings in text. Text that
// does not follow the requested format yields a zero Summary.
func Summarize(text string) Summary {
	var s Summary
	for _, m := range issueHeading.FindAllStringSubmatch(text, -1) {
		switch Severity(strings.ToUpper(m[1])) {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warning++
		case SeveritySuggestion:
			s.Suggestion++
		}
	}
	return s
}
