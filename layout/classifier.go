package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/yosephbernandus/pdf-parser/model"
	"github.com/yosephbernandus/pdf-parser/tables"
)

// Config holds the classification thresholds.
type Config struct {
	// RowToleranceFactor scales the mean font size to get the vertical
	// distance within which spans share a line.
	RowToleranceFactor float64

	// XClusterGap is the horizontal distance in points beyond which two
	// span positions on a line count as separate columns.
	XClusterGap float64

	// HeadingRatio is the minimum ratio of a line's font size to the
	// body font size for the line to classify as a heading.
	HeadingRatio float64

	// Level1Ratio and Level2Ratio set the font-size ratios at which a
	// heading is promoted to level 1 or 2. Headings below Level2Ratio
	// are level 3.
	Level1Ratio float64
	Level2Ratio float64

	// MaxHeadingColumns is the most column clusters a heading line may
	// have. Lines with more look tabular, however large their font.
	MaxHeadingColumns int

	// MinTableColumns is the column-cluster count at which a line
	// becomes a table candidate.
	MinTableColumns int

	// LoneTableColumns is the column-cluster count a single isolated
	// candidate line needs to stand as a table on its own. Below it the
	// line demotes to a paragraph.
	LoneTableColumns int

	// ParagraphGapFactor scales the body font size to get the vertical
	// gap that splits consecutive body lines into separate paragraphs.
	ParagraphGapFactor float64

	// FallbackBodySize is the body font size assumed when the page has
	// no text to measure.
	FallbackBodySize float64

	// Tables configures the table extraction applied to runs of
	// table-candidate lines.
	Tables tables.Config
}

// DefaultConfig returns the default classification configuration.
func DefaultConfig() Config {
	return Config{
		RowToleranceFactor: 0.5,
		XClusterGap:        10.0,
		HeadingRatio:       1.3,
		Level1Ratio:        1.8,
		Level2Ratio:        1.4,
		MaxHeadingColumns:  2,
		MinTableColumns:    3,
		LoneTableColumns:   4,
		ParagraphGapFactor: 1.5,
		FallbackBodySize:   12.0,
		Tables:             tables.DefaultConfig(),
	}
}

// lineKind is the per-line classification before neighboring lines are
// merged into elements.
type lineKind int

const (
	kindParagraph lineKind = iota
	kindHeading
	kindTableCandidate
)

// line is one horizontal run of spans with its classification.
type line struct {
	kind     lineKind
	level    int // heading level, set when kind is kindHeading
	spans    []model.TextSpan
	y        float64 // mean y of the line's spans
	xColumns int
	text     string
}

// ClassifySpans classifies positioned spans into an ordered sequence of
// layout elements using the default configuration. Spans are grouped
// into lines, each line is judged by font size and column structure,
// and neighboring lines merge into headings, paragraphs, and tables in
// reading order.
func ClassifySpans(spans []model.TextSpan) []model.Element {
	return ClassifySpansWithConfig(spans, DefaultConfig())
}

// ClassifySpansWithConfig classifies positioned spans using the given
// configuration.
func ClassifySpansWithConfig(spans []model.TextSpan, cfg Config) []model.Element {
	kept := make([]model.TextSpan, 0, len(spans))
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	var sum float64
	for _, s := range kept {
		sum += s.FontSize
	}
	tolerance := sum / float64(len(kept)) * cfg.RowToleranceFactor

	grouped := clusterLines(kept, tolerance)
	body := bodyFontSize(grouped, cfg.FallbackBodySize)

	lines := make([]line, len(grouped))
	for i, g := range grouped {
		lines[i] = classifyLine(g, body, cfg)
	}

	return mergeLines(lines, body, cfg)
}

// clusterLines groups spans into lines by y proximity, top to bottom.
// Same clustering as the tables package: a span joins the current line
// while its y is within tolerance of the line's first span.
func clusterLines(spans []model.TextSpan, tolerance float64) [][]model.TextSpan {
	sorted := make([]model.TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]model.TextSpan
	current := []model.TextSpan{sorted[0]}
	lineY := sorted[0].Y

	for _, span := range sorted[1:] {
		if math.Abs(span.Y-lineY) <= tolerance {
			current = append(current, span)
			continue
		}
		lines = append(lines, current)
		current = []model.TextSpan{span}
		lineY = span.Y
	}
	lines = append(lines, current)

	return lines
}

// bodyFontSize estimates the page's body text size: the most frequent
// font size weighted by character count, quantized to 0.5pt so close
// sizes pool together.
func bodyFontSize(lines [][]model.TextSpan, fallback float64) float64 {
	freq := make(map[int]int)
	for _, line := range lines {
		for _, s := range line {
			key := int(math.Round(s.FontSize * 2))
			freq[key] += len([]rune(s.Text))
		}
	}

	bestKey, bestCount := 0, -1
	for key, count := range freq {
		// Ties go to the larger size, keeping the estimate stable
		// across map iteration order.
		if count > bestCount || (count == bestCount && key > bestKey) {
			bestKey, bestCount = key, count
		}
	}
	if bestCount <= 0 {
		return fallback
	}
	return float64(bestKey) / 2
}

// countXColumns counts distinct x-position clusters on a line. Sorted x
// positions within gap of the current cluster's start belong to it; a
// wider jump starts a new cluster.
func countXColumns(spans []model.TextSpan, gap float64) int {
	if len(spans) == 0 {
		return 0
	}

	xs := make([]float64, len(spans))
	for i, s := range spans {
		xs[i] = s.X
	}
	sort.Float64s(xs)

	clusters := 1
	start := xs[0]
	for _, x := range xs[1:] {
		if math.Abs(x-start) > gap {
			clusters++
			start = x
		}
	}
	return clusters
}

// classifyLine judges one line: a notably oversized font with few
// columns is a heading, three or more columns look tabular, and
// everything else is body text.
func classifyLine(spans []model.TextSpan, body float64, cfg Config) line {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].X < spans[j].X
	})

	var ySum, maxSize float64
	parts := make([]string, len(spans))
	for i, s := range spans {
		ySum += s.Y
		if s.FontSize > maxSize {
			maxSize = s.FontSize
		}
		parts[i] = strings.TrimSpace(s.Text)
	}

	ln := line{
		spans:    spans,
		y:        ySum / float64(len(spans)),
		xColumns: countXColumns(spans, cfg.XClusterGap),
		text:     strings.Join(parts, " "),
	}

	ratio := 1.0
	if body > 0 {
		ratio = maxSize / body
	}

	switch {
	case ratio >= cfg.HeadingRatio && ln.xColumns <= cfg.MaxHeadingColumns:
		ln.kind = kindHeading
		switch {
		case ratio >= cfg.Level1Ratio:
			ln.level = 1
		case ratio >= cfg.Level2Ratio:
			ln.level = 2
		default:
			ln.level = 3
		}
	case ln.xColumns >= cfg.MinTableColumns:
		ln.kind = kindTableCandidate
	default:
		ln.kind = kindParagraph
	}

	return ln
}

// mergeLines folds classified lines into elements. Headings stand
// alone. Runs of table candidates become one table; a lone candidate
// must be wide enough or it demotes to a paragraph. Consecutive body
// lines join into one paragraph until a vertical gap larger than the
// paragraph threshold starts the next.
func mergeLines(lines []line, body float64, cfg Config) []model.Element {
	var elements []model.Element

	for i := 0; i < len(lines); {
		switch lines[i].kind {
		case kindHeading:
			elements = append(elements, model.Heading{
				Level: lines[i].level,
				Text:  lines[i].text,
			})
			i++

		case kindTableCandidate:
			start := i
			for i < len(lines) && lines[i].kind == kindTableCandidate {
				i++
			}

			if i-start >= 2 {
				var spans []model.TextSpan
				for _, ln := range lines[start:i] {
					spans = append(spans, ln.spans...)
				}
				elements = append(elements, model.TableBlock{
					Table: tables.FromSpansWithConfig(spans, cfg.Tables),
				})
				continue
			}

			if lines[start].xColumns >= cfg.LoneTableColumns {
				elements = append(elements, model.TableBlock{
					Table: tables.FromSpansWithConfig(lines[start].spans, cfg.Tables),
				})
			} else {
				elements = append(elements, model.Paragraph{Text: lines[start].text})
			}

		default:
			var parts []string
			prevY := lines[i].y

			for i < len(lines) && lines[i].kind == kindParagraph {
				gap := math.Abs(prevY - lines[i].y)
				if len(parts) > 0 && gap > body*cfg.ParagraphGapFactor {
					break
				}
				parts = append(parts, lines[i].text)
				prevY = lines[i].y
				i++
			}

			text := strings.Join(parts, " ")
			if strings.TrimSpace(text) != "" {
				elements = append(elements, model.Paragraph{Text: text})
			}
		}
	}

	return elements
}
