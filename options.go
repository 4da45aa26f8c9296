package plotpairs

import (
	"github.com/tsawler/plotpairs/htmldoc"
	"github.com/tsawler/plotpairs/pairs"
)

// ExtractOptions holds configuration for pair extraction.
type ExtractOptions struct {
	// Source selection (0-indexed)
	sheet     int
	sheetName string
	table     int

	// Forces the first row to be read as column names. When false, the
	// source decides (an HTML <thead> or a first row of <th> cells).
	header bool

	// Column selection. A non-empty name takes precedence over the index.
	xIndex  int
	yIndex  int
	xColumn string
	yColumn string

	nullValueMode pairs.NullValueMode

	// Delimited text
	encoding  string
	delimiter rune

	// HTML
	navigation htmldoc.NavigationExclusionMode

	// OCR
	ocrLanguage string
}

// defaultOptions returns the default extraction options: x from the first
// column, y from the second, nulls passed through.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		sheet:         0,
		table:         0,
		xIndex:        0,
		yIndex:        1,
		nullValueMode: pairs.Passthrough,
		navigation:    htmldoc.NavigationExclusionStandard,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		sheet:         o.sheet,
		sheetName:     o.sheetName,
		table:         o.table,
		header:        o.header,
		xIndex:        o.xIndex,
		yIndex:        o.yIndex,
		xColumn:       o.xColumn,
		yColumn:       o.yColumn,
		nullValueMode: o.nullValueMode,
		encoding:      o.encoding,
		delimiter:     o.delimiter,
		navigation:    o.navigation,
		ocrLanguage:   o.ocrLanguage,
	}
}
