package model

import (
	"encoding/csv"
	"io"
	"strings"
)

// Table is a grid of text cells as read from a source document, before any
// type inference has been applied. Rows may differ in length.
type Table struct {
	Name      string
	Rows      [][]Cell
	HasHeader bool // the first row holds column names
}

// Cell is one grid position of a Table.
type Cell struct {
	Text     string
	RowSpan  int
	ColSpan  int
	IsHeader bool
}

func textCell(s string) Cell {
	return Cell{Text: s, RowSpan: 1, ColSpan: 1}
}

// NewTable creates a rows x cols table of empty cells.
func NewTable(rows, cols int) *Table {
	t := &Table{Rows: make([][]Cell, rows)}
	for i := range t.Rows {
		t.Rows[i] = make([]Cell, cols)
		for j := range t.Rows[i] {
			t.Rows[i][j] = textCell("")
		}
	}
	return t
}

// NewTableFromStrings builds a table from rows of text.
func NewTableFromStrings(rows [][]string) *Table {
	t := &Table{Rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		t.Rows[i] = make([]Cell, len(row))
		for j, s := range row {
			t.Rows[i][j] = textCell(s)
		}
	}
	return t
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the length of the widest row.
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	return cols
}

// IsRagged reports whether any row is shorter than the widest row.
func (t *Table) IsRagged() bool {
	cols := t.ColCount()
	for _, row := range t.Rows {
		if len(row) != cols {
			return true
		}
	}
	return false
}

// Text returns the text at the given position. ok is false when the row
// or the cell does not exist.
func (t *Table) Text(row, col int) (text string, ok bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return "", false
	}
	return t.Rows[row][col].Text, true
}

// Strings returns the cell texts row by row.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Text
		}
	}
	return out
}

// WriteCSV writes the table as RFC 4180 CSV. Short rows stay short.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Strings()); err != nil {
		return err
	}
	return cw.Error()
}

// ToMarkdown renders the table as a Markdown table whose first row is the
// header. Short rows are padded.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := t.ColCount()
	var sb strings.Builder
	line := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" " + c + " |")
		}
		sb.WriteString("\n")
	}

	for i, row := range t.Rows {
		cells := make([]string, cols)
		for j := range row {
			cells[j] = escapeMarkdown(row[j].Text)
		}
		line(cells)
		if i == 0 {
			sep := make([]string, cols)
			for j := range sep {
				sep[j] = "---"
			}
			line(sep)
		}
	}
	return sb.String()
}

func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
