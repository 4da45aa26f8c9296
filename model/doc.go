// Package model provides the tabular data types shared by every reader in
// plotpairs.
//
// # Tables
//
// Readers (XLSX, HTML, CSV, OCR) produce a [Table]: a grid of text [Cell]
// values with optional row and column spans. Tables can be exported with
// ToMarkdown() and WriteCSV().
//
// # Frames
//
// A [Frame] is the typed dataset consumed by the pairs package. It holds an
// ordered set of named [Column] values that all share the same length:
//
//	frame, err := model.FrameFromTable(table, model.FrameOptions{HeaderRow: true})
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(frame.RowCount(), frame.ColumnNames())
//
// # Values
//
// Every cell is a [Value]: a number, a string, a time, or the null marker.
// The zero Value is null, and [Value.IsNull] is the only test callers need
// to recognise missing data.
package model
