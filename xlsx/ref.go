package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// Worksheet size limits of the file format.
const (
	MaxColumns = 16384   // XFD
	MaxRows    = 1048576 // 2^20
)

// Ref addresses a worksheet cell by zero-based column and row.
type Ref struct {
	Col int
	Row int
}

// ParseRef parses an A1-style reference such as "B7", "aa100" or "$C$3".
func ParseRef(s string) (Ref, error) {
	t := strings.ReplaceAll(s, "$", "")
	i := 0
	for i < len(t) && isLetter(t[i]) {
		i++
	}
	if i == 0 || i == len(t) {
		return Ref{}, fmt.Errorf("invalid cell reference %q", s)
	}

	col, ok := ColumnIndex(t[:i])
	if !ok {
		return Ref{}, fmt.Errorf("invalid column in %q", s)
	}
	row, err := strconv.Atoi(t[i:])
	if err != nil || row < 1 || row > MaxRows {
		return Ref{}, fmt.Errorf("invalid row in %q", s)
	}
	return Ref{Col: col, Row: row - 1}, nil
}

// String returns the A1-style form of the reference.
func (r Ref) String() string {
	return ColumnName(r.Col) + strconv.Itoa(r.Row+1)
}

// Range is an inclusive rectangle of cells.
type Range struct {
	Min Ref
	Max Ref
}

// ParseRange parses a reference such as "A1:D10". A single cell reference
// is a one-cell range. Corners given in any order are normalized.
func ParseRange(s string) (Range, error) {
	first, last, found := strings.Cut(s, ":")
	a, err := ParseRef(first)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Range{Min: a, Max: a}, nil
	}
	b, err := ParseRef(last)
	if err != nil {
		return Range{}, err
	}
	return Range{
		Min: Ref{Col: min(a.Col, b.Col), Row: min(a.Row, b.Row)},
		Max: Ref{Col: max(a.Col, b.Col), Row: max(a.Row, b.Row)},
	}, nil
}

// Contains reports whether ref lies inside the range.
func (g Range) Contains(ref Ref) bool {
	return ref.Col >= g.Min.Col && ref.Col <= g.Max.Col &&
		ref.Row >= g.Min.Row && ref.Row <= g.Max.Row
}

// Rows returns the height of the range.
func (g Range) Rows() int { return g.Max.Row - g.Min.Row + 1 }

// Cols returns the width of the range.
func (g Range) Cols() int { return g.Max.Col - g.Min.Col + 1 }

func (g Range) String() string {
	if g.Min == g.Max {
		return g.Min.String()
	}
	return g.Min.String() + ":" + g.Max.String()
}

// extend returns the smallest range holding both g and ref.
func (g Range) extend(ref Ref) Range {
	return Range{
		Min: Ref{Col: min(g.Min.Col, ref.Col), Row: min(g.Min.Row, ref.Row)},
		Max: Ref{Col: max(g.Max.Col, ref.Col), Row: max(g.Max.Row, ref.Row)},
	}
}

// ColumnIndex converts column letters to a zero-based index: A=0, Z=25,
// AA=26. Letters are case-insensitive. Columns past XFD are invalid.
func ColumnIndex(letters string) (int, bool) {
	if letters == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i] | 0x20 // lower case
		if c < 'a' || c > 'z' {
			return 0, false
		}
		n = n*26 + int(c-'a') + 1
		if n > MaxColumns {
			return 0, false
		}
	}
	return n - 1, true
}

// ColumnName converts a zero-based column index to letters. Negative
// indices have no name.
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
