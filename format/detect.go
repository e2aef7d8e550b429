// Package format names the output formats the CLI can produce and
// infers them from file extensions.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents an output format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Text is layout-aware plain text.
	Text
	// CSV is comma-separated table output.
	CSV
	// TSV is tab-separated table output.
	TSV
	// Markdown is structured Markdown output.
	Markdown
	// Raw is the positioned-span diagnostic dump.
	Raw
)

// String returns the format's name as used in CLI flags and messages.
func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	case Markdown:
		return "markdown"
	case Raw:
		return "raw"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	case Markdown:
		return ".md"
	case Raw:
		return ".raw"
	default:
		return ""
	}
}

// Detect infers the output format from a filename's extension. It
// returns Unknown when the extension is missing or unrecognized, so
// callers can apply their own default.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return Text
	case ".csv":
		return CSV
	case ".tsv", ".tab":
		return TSV
	case ".md", ".markdown":
		return Markdown
	case ".raw":
		return Raw
	default:
		return Unknown
	}
}
