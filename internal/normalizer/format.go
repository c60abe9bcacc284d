// Package normalizer converts fetched binary payloads into unicode text.
// Dispatch is a closed enumeration of supported formats, each mapped to one
// extraction function, instead of duck-typed branching on extensions.
package normalizer

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of normalization formats.
type Format int

const (
	// FormatRaw is the lossy fallback for undeclared formats: decode as
	// UTF-8 dropping invalid sequences, never fails.
	FormatRaw Format = iota
	// FormatPDF extracts text per page, joined with newlines in page order.
	FormatPDF
	// FormatHTML strips markup and returns visible text only.
	FormatHTML
	// FormatText decodes strictly as UTF-8; invalid bytes are an error.
	FormatText
	// FormatJSON decodes strictly as UTF-8, same policy as FormatText.
	FormatJSON
	// FormatNotebook extracts cell sources from a Jupyter notebook.
	FormatNotebook
)

// String returns the format name for logging.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatHTML:
		return "html"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatNotebook:
		return "notebook"
	default:
		return "raw"
	}
}

// ForPath maps a file path to its normalization format by extension.
// Unknown extensions get FormatRaw, the lossy never-fail fallback, so an
// unexpected file can never abort a batch fetch.
func ForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".html", ".htm":
		return FormatHTML
	case ".txt":
		return FormatText
	case ".json":
		return FormatJSON
	case ".ipynb":
		return FormatNotebook
	default:
		return FormatRaw
	}
}
