// Package pdfparser extracts text, tables, and document structure from
// PDF 1.4 files.
//
// Basic usage:
//
//	text, warnings, err := pdfparser.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfparser.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := pdfparser.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    Markdown()
//
// Extraction is layout-aware: spans are clustered into lines, headings
// are recognized by font size, aligned columns become tables, and the
// result renders as plain text, Markdown, CSV, or TSV. For lower-level
// access (objects, pages, positioned spans) the reader, tables, layout,
// and render packages are also available.
//
// A PDF is parsed fully in memory. An Extractor, like the underlying
// reader.Reader, is not safe for concurrent use; process documents in
// parallel with one Extractor each.
package pdfparser
