package render

import (
	"fmt"
	"strings"

	"github.com/yosephbernandus/pdf-parser/model"
)

// TableToCSV renders a table as CSV. Cells containing commas, double
// quotes, or line breaks are quoted with embedded quotes doubled
// (RFC 4180). Rows are joined with newlines; there is no trailing
// newline.
func TableToCSV(t model.Table) string {
	lines := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = escapeCSV(cell)
		}
		lines[i] = strings.Join(cells, ",")
	}
	return strings.Join(lines, "\n")
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// TableToTSV renders a table as tab-separated values. TSV has no
// quoting, so embedded tabs are replaced with spaces. Rows are joined
// with newlines; there is no trailing newline.
func TableToTSV(t model.Table) string {
	lines := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.ReplaceAll(cell, "\t", " ")
		}
		lines[i] = strings.Join(cells, "\t")
	}
	return strings.Join(lines, "\n")
}

// TableToAlignedText renders a table as plain text with columns padded
// to their widest cell and separated by two spaces. Each line is
// right-trimmed; rows are joined with newlines without a trailing one.
func TableToAlignedText(t model.Table) string {
	if t.IsEmpty() {
		return ""
	}

	widths := make([]int, t.NumColumns)
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if n := len([]rune(cell)); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	lines := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			width := 0
			if j < len(widths) {
				width = widths[j]
			}
			cells[j] = padRight(cell, width)
		}
		lines[i] = strings.TrimRight(strings.Join(cells, "  "), " ")
	}
	return strings.Join(lines, "\n")
}

// padRight pads s with spaces to width counted in runes. Sprintf's %-*s
// pads by bytes, which misaligns columns holding multibyte text.
func padRight(s string, width int) string {
	if pad := width - len([]rune(s)); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// SpansToRaw renders spans one per line with their position and font
// size, for diagnostics. The format is "[x, y] (Npt): text" with one
// decimal place on the coordinates. Non-empty output ends with a
// newline.
func SpansToRaw(spans []model.TextSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		fmt.Fprintf(&sb, "[%.1f, %.1f] (%gpt): %s\n", s.X, s.Y, s.FontSize, s.Text)
	}
	return sb.String()
}
