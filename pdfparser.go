package pdfparser

import (
	"github.com/yosephbernandus/pdf-parser/layout"
	"github.com/yosephbernandus/pdf-parser/reader"
	"github.com/yosephbernandus/pdf-parser/render"
	"github.com/yosephbernandus/pdf-parser/tables"
)

// Open prepares an Extractor for the PDF file at path. The file is not
// read until a terminal operation runs.
//
// Example:
//
//	text, warnings, err := pdfparser.Open("document.pdf").Text()
func Open(path string) *Extractor {
	return &Extractor{
		filename: path,
		options:  defaultOptions(),
	}
}

// FromBytes prepares an Extractor for a PDF already held in memory.
//
// Example:
//
//	md, _, err := pdfparser.FromBytes(data).Markdown()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader wraps an already-parsed reader.Reader. Useful when the same
// document feeds several extractions or when the caller needs reader-level
// access alongside the fluent API.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	text, warnings, err := pdfparser.FromReader(r).Text()
func FromReader(r *reader.Reader) *Extractor {
	e := &Extractor{
		reader:  r,
		options: defaultOptions(),
	}
	if r == nil {
		e.err = errNilReader
	}
	return e
}

// Must wraps a call returning (T, error) and panics on error. Intended
// for scripts and tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdfparser.Must(pdfparser.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText wraps a terminal operation returning (T, []Warning, error),
// panics on error, and discards the warnings.
//
// Example:
//
//	text := pdfparser.MustText(pdfparser.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ToText extracts every page of data as layout-aware plain text, page
// outputs separated by a blank line.
func ToText(data []byte) (string, error) {
	return renderPages(data, func(r *reader.Reader, page int) (string, error) {
		spans, err := r.ExtractPageSpans(page)
		if err != nil {
			return "", err
		}
		return render.ElementsToText(layout.ClassifySpans(spans)), nil
	})
}

// ToMarkdown extracts every page of data as Markdown, page outputs
// separated by a blank line.
func ToMarkdown(data []byte) (string, error) {
	return renderPages(data, func(r *reader.Reader, page int) (string, error) {
		spans, err := r.ExtractPageSpans(page)
		if err != nil {
			return "", err
		}
		return render.ElementsToMarkdown(layout.ClassifySpans(spans)), nil
	})
}

// ToCSV treats every page of data as one table and renders the tables as
// CSV, one page per block.
func ToCSV(data []byte) (string, error) {
	return renderPages(data, func(r *reader.Reader, page int) (string, error) {
		spans, err := r.ExtractPageSpans(page)
		if err != nil {
			return "", err
		}
		return render.TableToCSV(tables.FromSpans(spans)), nil
	})
}

// renderPages parses data and concatenates renderPage's output for each
// page, with a newline between non-empty accumulations.
func renderPages(data []byte, renderPage func(*reader.Reader, int) (string, error)) (string, error) {
	r, err := reader.Parse(data)
	if err != nil {
		return "", err
	}

	count, err := r.PageCount()
	if err != nil {
		return "", err
	}

	var out []byte
	for page := 0; page < count; page++ {
		rendered, err := renderPage(r, page)
		if err != nil {
			return "", err
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, rendered...)
	}

	return string(out), nil
}
