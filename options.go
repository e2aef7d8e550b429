package pdfparser

import (
	"github.com/yosephbernandus/pdf-parser/layout"
	"github.com/yosephbernandus/pdf-parser/tables"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in the API, stored as given).
	pages []int

	// Threshold configuration for table detection and layout
	// classification.
	tables tables.Config
	layout layout.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:  nil, // nil means all pages
		tables: tables.DefaultConfig(),
		layout: layout.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		tables: o.tables,
		layout: o.layout,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
