// Package parsers provides parsers for importing character drafts from various formats.
package parsers

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// ErrUnsupportedFormat is returned when no parser matches a format or file extension.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// RawDraft is a draft parsed from an external source before validation.
type RawDraft struct {
	entities.Draft
	LineNum int `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing drafts from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawDraft, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) (Parser, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}, nil
	case "csv":
		return &CSVParser{}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) (Parser, error) {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}
