// Package htmldoc reads the tables of an HTML document.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/plotpairs/model"
)

// Options configures how an HTML document is read.
type Options struct {
	// ContentType is an optional HTTP Content-Type header value whose
	// charset parameter takes precedence over anything declared in the
	// document.
	ContentType string

	// Navigation selects which page chrome is skipped.
	Navigation NavigationExclusionMode
}

// DefaultOptions returns options that skip page chrome in standard mode.
func DefaultOptions() Options {
	return Options{Navigation: NavigationExclusionStandard}
}

// Reader provides access to the tables of an HTML document.
type Reader struct {
	doc      *html.Node
	title    string
	tables   []*model.Table
	spanned  int // cells copied to fill a rowspan or colspan
	excluded int // tables skipped as page chrome
	checker  *exclusionChecker
}

// Open opens an HTML file for reading. The character set is taken from a
// byte order mark or <meta> declaration, defaulting to windows-1252 as
// browsers do.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, "")
}

// OpenReader parses HTML from an io.Reader with DefaultOptions and the
// given Content-Type.
func OpenReader(r io.Reader, contentType string) (*Reader, error) {
	opts := DefaultOptions()
	opts.ContentType = contentType
	return OpenReaderWithOptions(r, opts)
}

// OpenReaderWithOptions parses HTML from an io.Reader.
func OpenReaderWithOptions(r io.Reader, opts Options) (*Reader, error) {
	utf8Reader, err := charset.NewReader(r, opts.ContentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc, checker: newExclusionChecker(opts.Navigation, doc)}
	if title := findElement(doc, "title"); title != nil {
		reader.title = getTextContent(title)
	}
	reader.collectTables(doc)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string {
	return r.title
}

// TableCount returns the number of tables with at least one row.
func (r *Reader) TableCount() int {
	return len(r.tables)
}

// Tables returns all tables in document order.
func (r *Reader) Tables() []*model.Table {
	return append([]*model.Table(nil), r.tables...)
}

// Table returns the table at the given index (0-indexed).
func (r *Reader) Table(index int) (*model.Table, error) {
	if index < 0 || index >= len(r.tables) {
		return nil, fmt.Errorf("table index %d out of range (0-%d)", index, len(r.tables)-1)
	}
	return r.tables[index], nil
}

// SpannedCells returns how many grid positions were filled by copying a
// cell with a rowspan or colspan greater than one.
func (r *Reader) SpannedCells() int {
	return r.spanned
}

// ExcludedTables returns how many tables were skipped as page chrome.
func (r *Reader) ExcludedTables() int {
	return r.excluded
}

func (r *Reader) collectTables(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if r.checker.shouldExclude(n) {
			r.excluded += countElements(n, "table")
			return
		}
		if n.Data == "table" {
			if table := r.parseTable(n); len(table.Rows) > 0 {
				r.tables = append(r.tables, table)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectTables(c)
	}
}

// parseTable extracts a table from an HTML table element. Nested tables are
// collected separately by collectTables.
func (r *Reader) parseTable(tableNode *html.Node) *model.Table {
	table := &model.Table{}
	var trs []*html.Node
	headerRows := 0

	// Find caption, thead, tbody, tfoot, or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "caption":
			table.Name = getTextContent(c)
		case "thead":
			rows := childRows(c)
			trs = append(trs, rows...)
			headerRows += len(rows)
		case "tbody", "tfoot":
			trs = append(trs, childRows(c)...)
		case "tr":
			trs = append(trs, c)
		}
	}

	// pending[col] carries a rowspan cell down into later rows
	type carry struct {
		cell model.Cell
		left int
	}
	pending := map[int]*carry{}

	for i, tr := range trs {
		var row []model.Cell
		col := 0

		fill := func() {
			for {
				p, ok := pending[col]
				if !ok {
					return
				}
				row = append(row, p.cell)
				r.spanned++
				p.left--
				if p.left == 0 {
					delete(pending, col)
				}
				col++
			}
		}

		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}
			fill()

			cell := model.Cell{
				Text:     getTextContent(c),
				IsHeader: i < headerRows || c.Data == "th",
				RowSpan:  spanAttr(c, "rowspan"),
				ColSpan:  spanAttr(c, "colspan"),
			}

			for k := 0; k < cell.ColSpan; k++ {
				row = append(row, cell)
				if k > 0 {
					r.spanned++
				}
				if cell.RowSpan > 1 {
					pending[col] = &carry{cell: cell, left: cell.RowSpan - 1}
				}
				col++
			}
		}
		fill()

		if len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	}

	if headerRows > 0 {
		table.HasHeader = true
	} else if len(table.Rows) > 0 {
		// No explicit header, but a first row of th cells is one
		table.HasHeader = true
		for _, cell := range table.Rows[0] {
			if !cell.IsHeader {
				table.HasHeader = false
				break
			}
		}
	}

	return table
}

func childRows(section *html.Node) []*html.Node {
	var rows []*html.Node
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			rows = append(rows, c)
		}
	}
	return rows
}

// spanAttr reads a rowspan or colspan attribute, clamped to [1, 1000].
func spanAttr(n *html.Node, key string) int {
	for _, attr := range n.Attr {
		if attr.Key == key {
			v, err := strconv.Atoi(strings.TrimSpace(attr.Val))
			if err != nil || v < 1 {
				return 1
			}
			if v > 1000 {
				return 1000
			}
			return v
		}
	}
	return 1
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants,
// collapsing runs of whitespace.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.Join(strings.Fields(result.String()), " ")
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "tr", "td", "th":
			result.WriteString(" ")
		}
	}
}
