package model

import "fmt"

// Column is a named, ordered sequence of cells of one kind.
type Column struct {
	Name   string
	Kind   Kind // Kind of the non-null cells; KindNull if every cell is null
	Values []Value
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// Frame is a tabular dataset: an ordered set of named columns that all
// share the same length.
type Frame struct {
	Name    string
	columns []Column
	rows    int
}

// NewFrame creates a frame from the given columns. Every column must have the
// same number of cells. The column slices are copied, so later changes to
// the arguments do not affect the frame.
func NewFrame(name string, columns ...Column) (*Frame, error) {
	f := &Frame{
		Name:    name,
		columns: make([]Column, len(columns)),
	}
	for i, col := range columns {
		if i == 0 {
			f.rows = len(col.Values)
		} else if len(col.Values) != f.rows {
			return nil, fmt.Errorf("column %d (%q) has %d rows, want %d", i, col.Name, len(col.Values), f.rows)
		}
		values := make([]Value, len(col.Values))
		copy(values, col.Values)
		f.columns[i] = Column{Name: col.Name, Kind: col.Kind, Values: values}
	}
	return f, nil
}

// RowCount returns the number of rows.
func (f *Frame) RowCount() int {
	return f.rows
}

// ColumnCount returns the number of columns.
func (f *Frame) ColumnCount() int {
	return len(f.columns)
}

// Value returns the cell at the given column and row (0-indexed).
// It panics if either index is out of range.
func (f *Frame) Value(col, row int) Value {
	return f.columns[col].Values[row]
}

// Column returns a copy of the column header (name and kind) together with
// a copy of its cells.
func (f *Frame) Column(i int) (Column, error) {
	if i < 0 || i >= len(f.columns) {
		return Column{}, fmt.Errorf("column index %d out of range (0-%d)", i, len(f.columns)-1)
	}
	c := f.columns[i]
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Kind: c.Kind, Values: values}, nil
}

// ColumnIndex returns the index of the first column with the given name.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	for i, c := range f.columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ColumnNames returns the names of all columns in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the cells of the given row across all columns.
func (f *Frame) Row(i int) ([]Value, error) {
	if i < 0 || i >= f.rows {
		return nil, fmt.Errorf("row index %d out of range (0-%d)", i, f.rows-1)
	}
	row := make([]Value, len(f.columns))
	for j, c := range f.columns {
		row[j] = c.Values[i]
	}
	return row, nil
}
