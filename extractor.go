package pdfparser

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yosephbernandus/pdf-parser/layout"
	"github.com/yosephbernandus/pdf-parser/model"
	"github.com/yosephbernandus/pdf-parser/reader"
	"github.com/yosephbernandus/pdf-parser/render"
	"github.com/yosephbernandus/pdf-parser/tables"
)

var errNilReader = errors.New("pdfparser: nil reader")

// Extractor provides a fluent interface for extracting content from a
// PDF. Each configuration method returns a new Extractor instance, so
// a configured Extractor can be shared and branched freely; parsing
// happens once a terminal operation (Text, Markdown, CSV, TSV, Raw,
// Spans, PageCount) runs.
type Extractor struct {
	// Source (exactly one is used): a path, bytes in memory, or an
	// already-parsed reader.
	filename string
	data     []byte
	reader   *reader.Reader

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options, so each chain method returns an independent instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		reader:   e.reader,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ensureReader parses the source if no reader exists yet.
func (e *Extractor) ensureReader() error {
	if e.reader != nil {
		return nil
	}

	if e.data != nil {
		r, err := reader.Parse(e.data)
		if err != nil {
			return err
		}
		e.reader = r
		return nil
	}

	if e.filename == "" {
		return fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.filename, err)
	}
	r, err := reader.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", e.filename, err)
	}
	e.reader = r
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages selects which pages to extract (1-indexed). Multiple calls are
// cumulative; duplicates collapse and pages always process in document
// order.
//
// Example:
//
//	text, _, err := pdfparser.Open("doc.pdf").Pages(1, 3, 5).Text()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange selects a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	text, _, err := pdfparser.Open("doc.pdf").PageRange(5, 10).Text()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithTableConfig sets the clustering thresholds used for table
// detection, both for the CSV/TSV operations and for tables found
// inside Text and Markdown output.
//
// Example:
//
//	cfg := tables.DefaultConfig()
//	cfg.ColumnTolerance = 6
//	csv, _, err := pdfparser.Open("doc.pdf").WithTableConfig(cfg).CSV()
func (e *Extractor) WithTableConfig(cfg tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tables = cfg
	newExt.options.layout.Tables = cfg
	return newExt
}

// WithLayoutConfig sets the classification thresholds used when Text
// and Markdown split a page into headings, paragraphs, and tables.
func (e *Extractor) WithLayoutConfig(cfg layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layout = cfg
	return newExt
}

// ============================================================================
// Terminal Operations (parse the document and return results)
// ============================================================================

// Text extracts the selected pages as layout-aware plain text: headings
// and paragraphs as blocks, detected tables rendered as aligned columns.
//
// Returns the text, any warnings encountered during processing, and an
// error if extraction failed. Warnings indicate non-fatal issues (a
// broken font, a dangling reference) where extraction succeeded but
// results may be incomplete.
//
// Example:
//
//	text, warnings, err := pdfparser.Open("document.pdf").Text()
//	if len(warnings) > 0 {
//	    log.Println(pdfparser.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	return e.renderPerPage(func(spans []model.TextSpan) string {
		return render.ElementsToText(layout.ClassifySpansWithConfig(spans, e.options.layout))
	})
}

// Markdown extracts the selected pages as Markdown: #-prefixed headings,
// blank-line-separated paragraphs, and pipe tables.
//
// Example:
//
//	md, warnings, err := pdfparser.Open("document.pdf").Markdown()
func (e *Extractor) Markdown() (string, []Warning, error) {
	return e.renderPerPage(func(spans []model.TextSpan) string {
		return render.ElementsToMarkdown(layout.ClassifySpansWithConfig(spans, e.options.layout))
	})
}

// CSV treats each selected page as one table and renders it as CSV.
// Best suited to pages that actually are tabular; prose pages come out
// as one column per text line cluster.
//
// Example:
//
//	csv, warnings, err := pdfparser.Open("report.pdf").Pages(2).CSV()
func (e *Extractor) CSV() (string, []Warning, error) {
	return e.renderPerPage(func(spans []model.TextSpan) string {
		return render.TableToCSV(tables.FromSpansWithConfig(spans, e.options.tables))
	})
}

// TSV treats each selected page as one table and renders it as
// tab-separated values. Tabs inside cells are replaced with spaces.
func (e *Extractor) TSV() (string, []Warning, error) {
	return e.renderPerPage(func(spans []model.TextSpan) string {
		return render.TableToTSV(tables.FromSpansWithConfig(spans, e.options.tables))
	})
}

// Raw renders the positioned spans of the selected pages one per line,
// with coordinates and font size. Useful for debugging extraction and
// for tuning table/layout thresholds.
//
// Example:
//
//	raw, _, err := pdfparser.Open("document.pdf").Pages(1).Raw()
func (e *Extractor) Raw() (string, []Warning, error) {
	return e.renderPerPage(render.SpansToRaw)
}

// Spans extracts the positioned text spans of the selected pages,
// concatenated in page order.
//
// Example:
//
//	spans, warnings, err := pdfparser.Open("document.pdf").Pages(1).Spans()
func (e *Extractor) Spans() ([]model.TextSpan, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}

	pageIndices, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	var allSpans []model.TextSpan
	for _, pageNum := range pageIndices {
		spans, err := e.reader.ExtractPageSpans(pageNum)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", pageNum+1, err)
		}
		allSpans = append(allSpans, spans...)
	}

	return allSpans, e.reader.Warnings(), nil
}

// PageCount returns the number of pages in the document.
//
// Example:
//
//	count, err := pdfparser.Open("document.pdf").PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.reader.PageCount()
}

// ============================================================================
// Internal helpers
// ============================================================================

// renderPerPage runs renderPage over each selected page's spans and
// joins the outputs, inserting a newline before each page once output
// has accumulated.
func (e *Extractor) renderPerPage(renderPage func([]model.TextSpan) string) (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return "", nil, err
	}

	pageIndices, err := e.resolvePages()
	if err != nil {
		return "", nil, err
	}

	var result strings.Builder
	for _, pageNum := range pageIndices {
		spans, err := e.reader.ExtractPageSpans(pageNum)
		if err != nil {
			return "", nil, fmt.Errorf("page %d: %w", pageNum+1, err)
		}

		if result.Len() > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(renderPage(spans))
	}

	return result.String(), e.reader.Warnings(), nil
}

// resolvePages converts the selected 1-indexed page numbers to validated
// 0-indexed ones, deduplicated and in document order. With no selection
// it returns all pages.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount, err := e.reader.PageCount()
	if err != nil {
		return nil, fmt.Errorf("get page count: %w", err)
	}

	if len(e.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d of %d: %w", p, pageCount, reader.ErrPageOutOfRange)
		}
		if !seen[p-1] {
			seen[p-1] = true
			pageIndices = append(pageIndices, p-1)
		}
	}

	sort.Ints(pageIndices)
	return pageIndices, nil
}
