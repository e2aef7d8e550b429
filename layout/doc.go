// Package layout classifies positioned text spans into document
// structure: headings, paragraphs, and tables in reading order.
//
// Classification is heuristic. Spans are grouped into lines by vertical
// proximity, then each line is judged against the page's body font size
// (the character-weighted modal size): notably oversized lines with
// little column structure become headings, lines whose spans spread
// across three or more x-position clusters look tabular, and the rest
// is body text. Neighboring lines then merge - runs of tabular lines
// become one table via the tables package, and consecutive body lines
// join into paragraphs until a large vertical gap separates them.
//
// # Usage
//
//	spans, err := r.ExtractPageSpans(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	elements := layout.ClassifySpans(spans)
//	for _, el := range elements {
//	    switch el := el.(type) {
//	    case model.Heading:
//	        fmt.Println("heading:", el.Text)
//	    case model.Paragraph:
//	        fmt.Println("paragraph:", el.Text)
//	    case model.TableBlock:
//	        fmt.Println("table:", el.Table.RowCount(), "rows")
//	    }
//	}
//
// All thresholds are exposed through [Config] with defaults from
// [DefaultConfig]. The heuristics trade precision for simplicity:
// heading detection can misfire on decorative text, and dense
// multi-column body text can read as tabular. Callers needing exact
// structure should consume the spans directly.
package layout
