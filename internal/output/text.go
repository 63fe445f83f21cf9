package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/critique/internal/review"
)

const borderWidth = 60

// TextWriter prints the review between two bordered headers.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, r *review.Result) error {
	ew := &errWriter{w: w}
	border := strings.Repeat("=", borderWidth)

	ew.printf("\n%s\n", border)
	ew.printf("  CODE REVIEW: %s\n", r.Filename)
	ew.printf("  Model: %s\n", r.Model)
	ew.printf("%s\n\n", border)
	ew.println(r.Text)
	ew.printf("\n%s\n\n", border)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
