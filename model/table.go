package model

// Table is extracted tabular content. Rows is rectangular: every row has
// NumColumns cells, with empty strings where the page had no text.
type Table struct {
	Rows       [][]string
	NumColumns int
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table holds no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Cell returns the cell at row, col, or an empty string when out of
// range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
