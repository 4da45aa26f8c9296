package ocr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/plotpairs/model"
)

// Recognizer turns an image of a block of text into that text.
// *Client satisfies it.
type Recognizer interface {
	RecognizeBlock(imageData []byte) (string, error)
}

// columnGap separates cells: a tab or two or more spaces.
var columnGap = regexp.MustCompile(`\t+| {2,}`)

// RecognizeTable normalizes an image, recognizes its text and splits the
// text into a table.
func RecognizeTable(rec Recognizer, imageData []byte) (*model.Table, error) {
	normalized, _, err := NormalizeImage(imageData)
	if err != nil {
		return nil, err
	}

	text, err := rec.RecognizeBlock(normalized)
	if err != nil {
		return nil, fmt.Errorf("recognizing image: %w", err)
	}

	table := ParseTableText(text)
	if table.RowCount() == 0 {
		return nil, ErrNoTable
	}
	return table, nil
}

// ParseTableText splits recognized text into rows at line breaks and into
// cells at tabs or runs of two or more spaces. Blank lines are dropped.
// Rows may differ in length.
func ParseTableText(text string) *model.Table {
	var rows [][]string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, columnGap.Split(line, -1))
	}
	return model.NewTableFromStrings(rows)
}
