// Package csvdoc reads delimited text files (CSV, TSV) into tables.
//
// Input may be in any encoding known to the WHATWG Encoding Standard. A
// UTF-8 or UTF-16 byte order mark always takes precedence over the
// configured encoding.
package csvdoc

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/plotpairs/model"
)

// Options configures how a delimited file is read.
type Options struct {
	// Delimiter separates fields. Zero means sniff: tab if the first line
	// holds more tabs than commas, otherwise comma.
	Delimiter rune

	// Encoding names the character set of the input, for example
	// "windows-1252", "latin1" or "utf-16le". Empty means UTF-8.
	Encoding string

	// Comment, if non-zero, marks lines to skip when it is their first
	// character.
	Comment rune
}

// Reader holds the records of a delimited file.
type Reader struct {
	name      string
	delimiter rune
	records   [][]string
}

// Open reads a delimited file.
func Open(filename string, opts Options) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r, err := OpenReader(f, opts)
	if err != nil {
		return nil, err
	}
	r.name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return r, nil
}

// OpenReader reads delimited records from r.
func OpenReader(r io.Reader, opts Options) (*Reader, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
	br := bufio.NewReader(decoded)

	delim := opts.Delimiter
	if delim == 0 {
		delim, err = sniffDelimiter(br)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.Comment = opts.Comment
	cr.FieldsPerRecord = -1 // rows may differ in length
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	return &Reader{delimiter: delim, records: records}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// sniffDelimiter peeks at the first line without consuming it.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	peek, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, err
	}
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	if bytes.Count(peek, []byte{'\t'}) > bytes.Count(peek, []byte{','}) {
		return '\t', nil
	}
	return ',', nil
}

// Delimiter returns the field delimiter that was used.
func (r *Reader) Delimiter() rune {
	return r.delimiter
}

// RecordCount returns the number of records read, including any header.
func (r *Reader) RecordCount() int {
	return len(r.records)
}

// Table returns the records as a text table.
func (r *Reader) Table() *model.Table {
	table := model.NewTableFromStrings(r.records)
	table.Name = r.name
	return table
}
