package output

import (
	"io"

	"github.com/dshills/critique/internal/review"
)

// MarkdownWriter outputs the review as a markdown document.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, r *review.Result) error {
	ew := &errWriter{w: w}

	ew.printf("## Code Review: `%s`\n\n", r.Filename)
	ew.printf("*Model: %s (%s)*\n\n", r.Model, r.Provider)

	s := r.Summary
	ew.printf("| Severity | Count |\n")
	ew.printf("|----------|-------|\n")
	ew.printf("| %s %s | %d |\n", mdSeverityIcon(review.SeverityCritical), review.SeverityCritical, s.Critical)
	ew.printf("| %s %s | %d |\n", mdSeverityIcon(review.SeverityWarning), review.SeverityWarning, s.Warning)
	ew.printf("| %s %s | %d |\n", mdSeverityIcon(review.SeveritySuggestion), review.SeveritySuggestion, s.Suggestion)
	ew.printf("| **Total** | **%d** |\n\n", s.Total())

	ew.println(r.Text)
	ew.println("")

	footer := "*Reviewed in %dms"
	if r.Cached {
		footer += " (cached)"
	}
	ew.printf(footer+", %d tokens*\n", r.DurationMs, r.TokensUsed)
	return ew.err
}

func mdSeverityIcon(s review.Severity) string {
	switch s {
	case review.SeverityCritical:
		return ":red_circle:"
	case review.SeverityWarning:
		return ":orange_circle:"
	case review.SeveritySuggestion:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}
