package xlsx

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Built-in number format IDs that render as dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true,
	20: true, 21: true, 22: true, 45: true, 46: true, 47: true,
}

// isDateFormatCode reports whether a custom format code renders a date or
// time. Quoted literals, escaped characters and bracketed sections such as
// colours are skipped; "General" and pure number codes are not dates.
func isDateFormatCode(code string) bool {
	inQuote := false
	inBracket := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			// [h], [mm] and [ss] are elapsed-time codes
			if i+1 < len(code) && strings.ContainsRune("hHmMsS", rune(code[i+1])) {
				return true
			}
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case strings.ContainsRune("yYmMdDhHsS", rune(c)):
			return true
		case c == ';':
			// Only the first (positive) section decides.
			return false
		}
	}
	return false
}

// serialToTime converts a spreadsheet serial date to a UTC time. The 1900
// system counts from 1899-12-30 so that the phantom 1900-02-29 is absorbed
// for all dates after February 1900.
func serialToTime(serial float64, date1904 bool) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	if date1904 {
		base = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	days := math.Floor(serial)
	frac := serial - days
	// Round to the millisecond to undo binary fraction noise.
	ms := math.Round(frac * 24 * 60 * 60 * 1000)
	return base.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}

// formatDate renders a serial date as RFC 3339, or returns ok=false if the
// value is not a number.
func formatDate(value string, date1904 bool) (string, bool) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", false
	}
	return serialToTime(serial, date1904).Format(time.RFC3339), true
}

// dateStyles reports, for each cell style index, whether the style's
// number format renders a date or time.
func dateStyles(st *stylesPart) []bool {
	custom := make(map[int]string, len(st.NumFmts))
	for _, nf := range st.NumFmts {
		custom[nf.ID] = nf.Code
	}
	out := make([]bool, len(st.CellXfs))
	for i, xf := range st.CellXfs {
		if builtinDateFormats[xf.NumFmtID] {
			out[i] = true
		} else if code, ok := custom[xf.NumFmtID]; ok {
			out[i] = isDateFormatCode(code)
		}
	}
	return out
}
