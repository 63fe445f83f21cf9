package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Validation failure kinds, matched with errors.Is.
var (
	ErrNotFound   = errors.New("file not found")
	ErrWrongType  = errors.New("wrong file type")
	ErrUnreadable = errors.New("could not read file")
	ErrEmpty      = errors.New("the file is empty")
)

// ValidationError is returned by Load when the file cannot be reviewed.
type ValidationError struct {
	Path   string
	Kind   error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Load reads the file at path and returns its text. The file must exist,
// carry the extension ext (including the dot), be valid UTF-8 and contain
// something other than whitespace.
func Load(path, ext string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &ValidationError{Path: path, Kind: ErrNotFound, Detail: fmt.Sprintf("'%s'", path)}
		}
		return "", &ValidationError{Path: path, Kind: ErrUnreadable, Detail: err.Error()}
	}

	if got := filepath.Ext(path); got != ext {
		return "", &ValidationError{
			Path:   path,
			Kind:   ErrWrongType,
			Detail: fmt.Sprintf("expected a %s file, got '%s'", ext, got),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ValidationError{Path: path, Kind: ErrUnreadable, Detail: err.Error()}
	}
	if !utf8.Valid(data) {
		return "", &ValidationError{Path: path, Kind: ErrUnreadable, Detail: "content is not valid UTF-8"}
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return "", &ValidationError{Path: path, Kind: ErrEmpty}
	}
	return content, nil
}
