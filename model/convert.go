package model

import (
	"strconv"
	"strings"
	"time"
)

// DefaultNullTokens are the cell texts treated as missing data.
var DefaultNullTokens = []string{"", "NA", "N/A", "NaN", "null", "NULL", "-"}

// DefaultTimeLayouts are the layouts tried, in order, when inferring a
// temporal column.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FrameOptions controls how a text Table becomes a typed Frame.
type FrameOptions struct {
	// HeaderRow takes column names from the first row. When false, columns
	// are named A, B, ..., Z, AA, AB, ...
	HeaderRow bool

	// NullTokens lists the cell texts (after trimming) that mean "no data".
	// Nil means DefaultNullTokens.
	NullTokens []string

	// TimeLayouts lists the layouts used to recognise temporal columns.
	// Nil means DefaultTimeLayouts.
	TimeLayouts []string
}

// FrameFromTable converts a table of text cells into a typed frame.
//
// Each column is inferred independently: if every non-null cell parses as a
// float the column is numeric, else if every non-null cell parses with one
// of the time layouts it is temporal, otherwise it keeps its text. Rows that
// are shorter than the widest row are padded with nulls.
func FrameFromTable(t *Table, opts FrameOptions) (*Frame, error) {
	nullTokens := opts.NullTokens
	if nullTokens == nil {
		nullTokens = DefaultNullTokens
	}
	layouts := opts.TimeLayouts
	if layouts == nil {
		layouts = DefaultTimeLayouts
	}
	nulls := make(map[string]bool, len(nullTokens))
	for _, tok := range nullTokens {
		nulls[tok] = true
	}

	rows := t.Rows
	var header []Cell
	if opts.HeaderRow && len(rows) > 0 {
		header = rows[0]
		rows = rows[1:]
	}

	cols := t.ColCount()
	columns := make([]Column, cols)
	raw := make([]string, len(rows))
	for c := 0; c < cols; c++ {
		name := ""
		if c < len(header) {
			name = strings.TrimSpace(header[c].Text)
		}
		if name == "" {
			name = columnLetters(c)
		}

		present := make([]bool, len(rows))
		for r, row := range rows {
			raw[r] = ""
			if c < len(row) {
				raw[r] = strings.TrimSpace(row[c].Text)
				present[r] = !nulls[raw[r]]
			}
		}

		kind, values := inferColumn(raw, present, layouts)
		columns[c] = Column{Name: name, Kind: kind, Values: values}
	}

	return NewFrame(t.Name, columns...)
}

func inferColumn(raw []string, present []bool, layouts []string) (Kind, []Value) {
	values := make([]Value, len(raw))

	if nums, ok := parseNumbers(raw, present); ok {
		kind := KindNull
		for i, p := range present {
			if p {
				values[i] = Number(nums[i])
				kind = KindNumber
			}
		}
		return kind, values
	}

	if times, ok := parseTimes(raw, present, layouts); ok {
		for i, p := range present {
			if p {
				values[i] = Time(times[i])
			}
		}
		return KindTime, values
	}

	for i, p := range present {
		if p {
			values[i] = String(raw[i])
		}
	}
	return KindString, values
}

func parseNumbers(raw []string, present []bool) ([]float64, bool) {
	nums := make([]float64, len(raw))
	for i, s := range raw {
		if !present[i] {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = f
	}
	return nums, true
}

func parseTimes(raw []string, present []bool, layouts []string) ([]time.Time, bool) {
	times := make([]time.Time, len(raw))
	for i, s := range raw {
		if !present[i] {
			continue
		}
		parsed := false
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				times[i] = t
				parsed = true
				break
			}
		}
		if !parsed {
			return nil, false
		}
	}
	return times, true
}

// columnLetters converts a 0-indexed column number to spreadsheet letters.
func columnLetters(index int) string {
	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}
