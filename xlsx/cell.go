package xlsx

// CellType classifies the cached value of a worksheet cell.
type CellType int

const (
	// Blank cells have no cached value. A formula that was never
	// calculated is blank.
	Blank CellType = iota
	// Text is a shared, inline or formula string.
	Text
	// Number is a numeric value without a date format.
	Number
	// Boolean is TRUE or FALSE.
	Boolean
	// Date is a number whose style renders it as a date or time.
	Date
	// Error is a formula error such as #N/A or #DIV/0!.
	Error
)

var cellTypeNames = [...]string{"blank", "text", "number", "boolean", "date", "error"}

func (t CellType) String() string {
	if t < 0 || int(t) >= len(cellTypeNames) {
		return "unknown"
	}
	return cellTypeNames[t]
}

// Cell is one position of a worksheet grid.
type Cell struct {
	Ref     Ref
	Type    CellType
	Value   string // display text; RFC 3339 for dates, TRUE/FALSE for booleans
	Formula string
	Style   int

	merge *Range
}

// IsBlank reports whether the cell shows nothing.
func (c *Cell) IsBlank() bool {
	return c.Type == Blank || c.Value == ""
}

// Merge returns the merged region covering the cell, if any.
func (c *Cell) Merge() (Range, bool) {
	if c.merge == nil {
		return Range{}, false
	}
	return *c.merge, true
}

// Covered reports whether the cell is hidden under a merged region, that
// is inside one without being its top-left cell.
func (c *Cell) Covered() bool {
	return c.merge != nil && c.merge.Min != c.Ref
}

// Sheet is a worksheet as a dense grid over its non-blank cells. Rows[0][0]
// is the cell at Origin, and every row has the same width.
type Sheet struct {
	Name   string
	Index  int
	Origin Ref
	Rows   [][]Cell
	Merges []Range
}

// Cell returns the cell at the given zero-based worksheet position, or nil
// when the position lies outside the grid.
func (s *Sheet) Cell(row, col int) *Cell {
	row -= s.Origin.Row
	col -= s.Origin.Col
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return nil
	}
	return &s.Rows[row][col]
}

// CellAt returns the cell at an A1-style reference, or nil.
func (s *Sheet) CellAt(ref string) *Cell {
	r, err := ParseRef(ref)
	if err != nil {
		return nil
	}
	return s.Cell(r.Row, r.Col)
}

// RowCount returns the height of the grid.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// ColCount returns the width of the grid.
func (s *Sheet) ColCount() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}
