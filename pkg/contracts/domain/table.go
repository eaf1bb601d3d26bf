package domain

// Table represents a rectangular grid of cell text as read from a source
// file. Cell values are kept verbatim; interpretation (numeric parsing,
// timestamp handling) happens downstream.
type Table struct {
	Name    string     `json:"name,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Cell returns the cell text at (row, col), or the empty string when the
// row is shorter than the column count. Source files frequently omit
// trailing cells; an absent cell is indistinguishable from an empty one.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RowCount returns the number of data rows (the header is not counted).
func (t Table) RowCount() int {
	return len(t.Rows)
}

// Head returns a copy of the table holding at most n rows. The rows are
// shared, not copied; callers must treat them as read-only.
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n >= len(t.Rows) {
		return t
	}
	return Table{Name: t.Name, Columns: t.Columns, Rows: t.Rows[:n]}
}
