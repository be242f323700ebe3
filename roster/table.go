package roster

import "strings"

// KeyColumn is the column holding the student identifier.
const KeyColumn = 0

// Table is the in-memory roster: named columns and rows of cells. Every row
// always has exactly ColumnCount cells.
//
// A Table is owned by one session at a time and is not safe for concurrent use.
type Table struct {
	columns []string
	rows    [][]Cell
}

// New creates a table with the given header and no rows.
func New(columns ...string) *Table {
	return &Table{columns: append([]string(nil), columns...)}
}

// FromRows builds a table from a header and already-typed rows, keeping
// absent cells absent. Rows shorter than the header are padded with absent
// cells; longer rows are a FormatError.
func FromRows(columns []string, rows [][]Cell) (*Table, error) {
	t := New(columns...)
	for i, src := range rows {
		if len(src) > len(columns) {
			return nil, &FormatError{Row: i, Col: -1, Reason: "row has more fields than the header"}
		}
		row := make([]Cell, len(columns))
		copy(row, src)
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Load replaces the whole table with records: the first record is the
// header and every following record is a data row set positionally.
// Missing trailing fields and empty fields become absent cells. A data row
// with more fields than the header is rejected and the table is left as it was.
// Loading nothing leaves an empty table with no columns.
func (t *Table) Load(records [][]string) error {
	if len(records) == 0 {
		t.columns, t.rows = nil, nil
		return nil
	}
	header := append([]string(nil), records[0]...)
	rows := make([][]Cell, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) > len(header) {
			return &FormatError{Row: i, Col: -1, Reason: "row has more fields than the header"}
		}
		row := make([]Cell, len(header))
		for j, field := range rec {
			if field != "" {
				row[j] = Text(field)
			}
		}
		rows = append(rows, row)
	}
	t.columns, t.rows = header, rows
	return nil
}

// Export renders the header followed by every data row in order. Absent
// cells are rendered as "".
func (t *Table) Export() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, t.Columns())
	for _, row := range t.rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = c.String()
		}
		out = append(out, rec)
	}
	return out
}

// AppendRow adds a row of absent cells at the end and returns its index.
func (t *Table) AppendRow() int {
	t.rows = append(t.rows, make([]Cell, len(t.columns)))
	return len(t.rows) - 1
}

// RemoveRow deletes the row at index.
func (t *Table) RemoveRow(index int) error {
	if index < 0 || index >= len(t.rows) {
		return rowIndexError(index, len(t.rows))
	}
	t.rows = append(t.rows[:index], t.rows[index+1:]...)
	return nil
}

// AppendColumn adds a column of absent cells labelled name and returns its index.
func (t *Table) AppendColumn(name string) int {
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], Cell{})
	}
	return len(t.columns) - 1
}

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) (Cell, error) {
	if err := t.check(row, col); err != nil {
		return Cell{}, err
	}
	return t.rows[row][col], nil
}

// SetCell stores text at (row, col). The column must already exist.
func (t *Table) SetCell(row, col int, text string) error {
	if err := t.check(row, col); err != nil {
		return err
	}
	t.rows[row][col] = Text(text)
	return nil
}

// ClearCell makes the cell at (row, col) absent.
func (t *Table) ClearCell(row, col int) error {
	if err := t.check(row, col); err != nil {
		return err
	}
	t.rows[row][col] = Cell{}
	return nil
}

// HeaderLabel returns the name of column col.
func (t *Table) HeaderLabel(col int) (string, error) {
	if col < 0 || col >= len(t.columns) {
		return "", columnIndexError(col, len(t.columns))
	}
	return t.columns[col], nil
}

// ColumnIndex returns the first column labelled name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) RowCount() int    { return len(t.rows) }
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Row returns a copy of the cells of one row.
func (t *Table) Row(index int) ([]Cell, error) {
	if index < 0 || index >= len(t.rows) {
		return nil, rowIndexError(index, len(t.rows))
	}
	return append([]Cell(nil), t.rows[index]...), nil
}

// Rows returns a deep copy of every row.
func (t *Table) Rows() [][]Cell {
	out := make([][]Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether both tables have the same header and cells.
func (t *Table) Equal(o *Table) bool {
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != o.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}

func (t *Table) check(row, col int) error {
	if row < 0 || row >= len(t.rows) {
		return rowIndexError(row, len(t.rows))
	}
	if col < 0 || col >= len(t.columns) {
		return columnIndexError(col, len(t.columns))
	}
	return nil
}

// Matches reports whether key contains query, ignoring case. An empty query
// matches everything.
func Matches(key, query string) bool {
	return strings.Contains(strings.ToLower(key), strings.ToLower(query))
}

// Filter returns the indices of the rows whose key column matches query, in
// row order. The table is not modified.
func Filter(t *Table, query string) []int {
	idx := make([]int, 0, t.RowCount())
	for i := range t.rows {
		var key string
		if KeyColumn < len(t.columns) {
			key = t.rows[i][KeyColumn].String()
		}
		if Matches(key, query) {
			idx = append(idx, i)
		}
	}
	return idx
}
