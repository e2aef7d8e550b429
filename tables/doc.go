// Package tables turns positioned text spans into tabular data.
//
// Table detection works purely from span geometry: spans are clustered
// into rows by vertical proximity (scaled to the text's font size), then
// column positions are found by clustering the x coordinates of every
// span across all rows. Each span lands in its nearest column, so the
// result is always rectangular - cells without text are empty strings.
//
// # Usage
//
// Build a table from the spans of a page:
//
//	spans, err := r.ExtractPageSpans(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table := tables.FromSpans(spans)
//
// The clustering thresholds are exposed through [Config]:
//
//	cfg := tables.DefaultConfig()
//	cfg.ColumnTolerance = 15.0 // wider columns
//	table := tables.FromSpansWithConfig(spans, cfg)
//
// The output [model.Table] is consumed by the render package for CSV,
// TSV, and aligned-text output.
package tables
