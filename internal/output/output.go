package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/critique/internal/review"
)

// Writer writes a result in a specific format.
type Writer interface {
	Write(w io.Writer, r *review.Result) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteResult renders r to w in format.
func WriteResult(w io.Writer, r *review.Result, format string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	return writer.Write(w, r)
}

// WriteFile renders r to the file at path, truncating it.
func WriteFile(path string, r *review.Result, format string) (err error) {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return writer.Write(f, r)
}
