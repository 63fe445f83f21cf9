package records

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the document format produced by Write.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user supplied name to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported record format: %s", s)
	}
}

// Write serializes rs to path, replacing any existing file.
func Write(rs RecordSet, path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, rs, format); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// Encode writes rs to w in the given format.
func Encode(w io.Writer, rs RecordSet, format Format) error {
	if rs == nil {
		rs = RecordSet{}
	}
	switch format {
	case FormatJSON, "":
		if err := json.NewEncoder(w).Encode(rs); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rs); err != nil {
			return fmt.Errorf("writing YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported record format: %s", format)
	}
}
