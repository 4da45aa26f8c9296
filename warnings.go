package plotpairs

import (
	"fmt"
	"strings"
)

// WarningCode identifies the kind of non-fatal issue found while reading a
// source.
type WarningCode int

const (
	// WarningRaggedRows means rows differed in length and short rows were
	// padded with nulls.
	WarningRaggedRows WarningCode = iota + 1

	// WarningSkippedSheets means some workbook sheets could not be read.
	WarningSkippedSheets

	// WarningSpannedCells means HTML rowspan or colspan cells were copied
	// into every grid position they cover.
	WarningSpannedCells

	// WarningExcludedTables means HTML tables inside navigation or other
	// page chrome were not counted.
	WarningExcludedTables

	// WarningOCR means the table was recognized from an image and may
	// contain recognition errors.
	WarningOCR

	// WarningDroppedRows means some rows produced no pair.
	WarningDroppedRows
)

// String returns a short name for the code.
func (c WarningCode) String() string {
	switch c {
	case WarningRaggedRows:
		return "ragged-rows"
	case WarningSkippedSheets:
		return "skipped-sheets"
	case WarningSpannedCells:
		return "spanned-cells"
	case WarningExcludedTables:
		return "excluded-tables"
	case WarningOCR:
		return "ocr"
	case WarningDroppedRows:
		return "dropped-rows"
	default:
		return fmt.Sprintf("WarningCode(%d)", int(c))
	}
}

// Warning is a non-fatal issue encountered during extraction.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return w.Code.String() + ": " + w.Message
}

// FormatWarnings renders warnings one per line. It returns "" for none.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
