package tables

import (
	"sort"
	"strings"

	"github.com/yosephbernandus/pdf-parser/model"
)

// Config holds the clustering thresholds used when building tables from
// positioned spans.
type Config struct {
	// RowToleranceFactor scales the mean font size of the input spans to
	// get the vertical distance (in points) within which two spans are
	// treated as sharing a row. Larger fonts produce taller rows, so the
	// tolerance adapts to the text rather than using a fixed distance.
	RowToleranceFactor float64

	// ColumnTolerance is the maximum horizontal gap in points between
	// neighboring x positions that still fall into the same column.
	// A gap wider than this starts a new column.
	ColumnTolerance float64
}

// DefaultConfig returns the default clustering configuration.
func DefaultConfig() Config {
	return Config{
		RowToleranceFactor: 0.5,
		ColumnTolerance:    10.0,
	}
}

// FromSpans builds a table from positioned text spans using the default
// configuration. Spans are clustered into rows by vertical proximity and
// into columns by horizontal gap analysis; the result is rectangular,
// with empty strings for cells no span landed in.
func FromSpans(spans []model.TextSpan) model.Table {
	return FromSpansWithConfig(spans, DefaultConfig())
}

// FromSpansWithConfig builds a table from positioned text spans using
// the given configuration.
func FromSpansWithConfig(spans []model.TextSpan, cfg Config) model.Table {
	filtered := dropBlank(spans)
	if len(filtered) == 0 {
		return model.Table{}
	}

	tolerance := meanFontSize(filtered) * cfg.RowToleranceFactor
	rows := clusterRows(filtered, tolerance)

	for _, row := range rows {
		sortByX(row)
	}

	columns := detectColumns(rows, cfg.ColumnTolerance)

	return model.Table{
		Rows:       assignToColumns(rows, columns),
		NumColumns: len(columns),
	}
}

// dropBlank removes spans whose text is empty or whitespace-only.
func dropBlank(spans []model.TextSpan) []model.TextSpan {
	kept := make([]model.TextSpan, 0, len(spans))
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			kept = append(kept, s)
		}
	}
	return kept
}

func meanFontSize(spans []model.TextSpan) float64 {
	var sum float64
	for _, s := range spans {
		sum += s.FontSize
	}
	return sum / float64(len(spans))
}

// clusterRows groups spans into rows by y proximity. Spans are sorted
// top to bottom (y descending, PDF y grows upward) and a span joins the
// current row while its y is within tolerance of the row's first span.
// Rows come out in top-to-bottom order.
func clusterRows(spans []model.TextSpan, tolerance float64) [][]model.TextSpan {
	sorted := make([]model.TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]model.TextSpan
	current := []model.TextSpan{sorted[0]}
	rowY := sorted[0].Y

	for _, span := range sorted[1:] {
		if abs(span.Y-rowY) <= tolerance {
			current = append(current, span)
			continue
		}
		rows = append(rows, current)
		current = []model.TextSpan{span}
		rowY = span.Y
	}
	rows = append(rows, current)

	return rows
}

func sortByX(row []model.TextSpan) {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})
}

// detectColumns finds column x positions shared across all rows. Every
// span's x is collected and sorted; positions within tolerance of the
// cluster's last member extend the cluster, a larger gap starts a new
// one. Each cluster's mean becomes a column position.
func detectColumns(rows [][]model.TextSpan, tolerance float64) []float64 {
	var xs []float64
	for _, row := range rows {
		for _, s := range row {
			xs = append(xs, s.X)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)

	var columns []float64
	cluster := []float64{xs[0]}

	for _, x := range xs[1:] {
		if abs(x-cluster[len(cluster)-1]) <= tolerance {
			cluster = append(cluster, x)
			continue
		}
		columns = append(columns, mean(cluster))
		cluster = []float64{x}
	}
	columns = append(columns, mean(cluster))

	return columns
}

// assignToColumns places each span's text in the cell of its nearest
// column. Multiple spans landing in one cell are joined with a space;
// columns no span reached stay empty strings, keeping rows rectangular.
func assignToColumns(rows [][]model.TextSpan, columns []float64) [][]string {
	grid := make([][]string, len(rows))

	for i, row := range rows {
		cells := make([]string, len(columns))
		for _, span := range row {
			col := nearestColumn(span.X, columns)
			if cells[col] != "" {
				cells[col] += " "
			}
			cells[col] += span.Text
		}
		grid[i] = cells
	}

	return grid
}

func nearestColumn(x float64, columns []float64) int {
	best := 0
	bestDist := abs(x - columns[0])
	for i, col := range columns[1:] {
		if d := abs(x - col); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
