// Package plotpairs provides a fluent API for turning a column of a
// spreadsheet, CSV file, HTML table, Arrow file or scanned table into (x, y)
// pairs ready for plotting.
//
// Basic usage:
//
//	points, warnings, err := plotpairs.Open("readings.csv").
//	    Header().
//	    XColumn("time").
//	    YColumn("celsius").
//	    Pairs()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", plotpairs.FormatWarnings(warnings))
//	}
//
// Missing y values are handled according to the null value mode:
//
//	points, _, err := plotpairs.Open("readings.xlsx").
//	    SheetName("March").
//	    NullValueMode(pairs.AsZero).
//	    Pairs()
//
// For data already in memory, use FromFrame or FromTable. The lower-level
// pairs package works on any type that satisfies pairs.Dataset.
package plotpairs

import (
	"github.com/tsawler/plotpairs/format"
	"github.com/tsawler/plotpairs/model"
	"github.com/tsawler/plotpairs/pairs"
)

// Open returns an Extractor reading the named file. The format is taken from
// the file extension, or from the file contents when the extension is not
// recognized. The file is not read until a terminal operation such as
// Pairs() is called.
//
// Example:
//
//	points, warnings, err := plotpairs.Open("readings.csv").Pairs()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// FromFrame creates an Extractor over a typed frame that is already in
// memory. Source selection options such as Sheet and Header have no effect.
//
// Example:
//
//	points, _, err := plotpairs.FromFrame(frame).X(0).Y(2).Pairs()
func FromFrame(frame *model.Frame) *Extractor {
	ext := &Extractor{
		frame:   frame,
		options: defaultOptions(),
	}
	if frame == nil {
		ext.err = errNoSource
	}
	return ext
}

// FromTable creates an Extractor over a text table that is already in
// memory. Column types are inferred as they are for files.
//
// Example:
//
//	table := model.NewTableFromStrings([][]string{{"x", "y"}, {"1", "10"}})
//	points, _, err := plotpairs.FromTable(table).Header().Pairs()
func FromTable(table *model.Table) *Extractor {
	ext := &Extractor{
		table:   table,
		options: defaultOptions(),
	}
	if table == nil {
		ext.err = errNoSource
	}
	return ext
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	mode := plotpairs.Must(pairs.ParseNullValueMode("connected"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustPairs is a helper that wraps a call to Pairs() or Frame() and panics
// if the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	points := plotpairs.MustPairs(plotpairs.Open("readings.csv").Pairs())
func MustPairs[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Extract is shorthand for pairs.Extract with the given column indices and
// mode.
func Extract(dataset pairs.Dataset, xIndex, yIndex int, mode pairs.NullValueMode) ([]pairs.Pair, error) {
	return pairs.Extract(dataset, pairs.Options{XIndex: xIndex, YIndex: yIndex, NullValueMode: mode})
}
