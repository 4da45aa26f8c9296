package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

var errMissingPart = errors.New("missing part")

// Reader provides access to the sheets of an XLSX workbook.
type Reader struct {
	closer     io.Closer
	parts      map[string]*zip.File
	date1904   bool
	shared     []string
	dateStyles []bool
	sheets     []*Sheet
	skipped    []string
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader reads an XLSX workbook from an io.ReaderAt of the given size.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr.File)
}

func newReader(files []*zip.File) (*Reader, error) {
	r := &Reader{parts: make(map[string]*zip.File, len(files))}
	for _, f := range files {
		r.parts[f.Name] = f
	}
	if _, ok := r.parts["[Content_Types].xml"]; !ok {
		return nil, fmt.Errorf("%w: [Content_Types].xml", errMissingPart)
	}

	var wb workbookPart
	if err := r.decode("xl/workbook.xml", &wb); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	r.date1904 = wb.Props.Date1904

	targets, err := r.sheetTargets()
	if err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Shared strings and styles are optional
	var sst sharedStringsPart
	if r.decode("xl/sharedStrings.xml", &sst) == nil {
		r.shared = make([]string, len(sst.Items))
		for i, si := range sst.Items {
			r.shared[i] = richText(si.T, si.Runs)
		}
	}
	var styles stylesPart
	if r.decode("xl/styles.xml", &styles) == nil {
		r.dateStyles = dateStyles(&styles)
	}

	for i, ref := range wb.Sheets {
		target, ok := targets[ref.RID]
		if !ok {
			target = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
		sheet, err := r.parseWorksheet(target, ref.Name, len(r.sheets))
		if err != nil {
			r.skipped = append(r.skipped, ref.Name)
			continue
		}
		r.sheets = append(r.sheets, sheet)
	}
	if len(r.sheets) == 0 {
		return nil, fmt.Errorf("no readable worksheets")
	}

	return r, nil
}

// decode unmarshals the XML part with the given name into v.
func (r *Reader) decode(name string, v any) error {
	f, ok := r.parts[name]
	if !ok {
		return fmt.Errorf("%w: %s", errMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// sheetTargets maps relationship ids to part names. Targets are relative
// to xl/ unless they start with a slash.
func (r *Reader) sheetTargets() (map[string]string, error) {
	var rels relationshipsPart
	err := r.decode("xl/_rels/workbook.xml.rels", &rels)
	if errors.Is(err, errMissingPart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		if strings.HasPrefix(rel.Target, "/") {
			targets[rel.ID] = strings.TrimPrefix(rel.Target, "/")
		} else {
			targets[rel.ID] = path.Join("xl", rel.Target)
		}
	}
	return targets, nil
}

// maxGridCells bounds the dense grid built for one sheet. A sheet whose
// non-blank cells span more is skipped.
const maxGridCells = 1 << 24

// parseWorksheet decodes the sparse cells of a worksheet part and places
// them on a dense grid covering the non-blank ones.
func (r *Reader) parseWorksheet(part, name string, index int) (*Sheet, error) {
	var ws worksheetPart
	if err := r.decode(part, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{Name: name, Index: index}
	for _, m := range ws.Merges {
		if g, err := ParseRange(m.Ref); err == nil {
			sheet.Merges = append(sheet.Merges, g)
		}
	}

	cells := make(map[Ref]Cell, len(ws.Cells))
	var bounds Range
	found := false
	for i := range ws.Cells {
		ref, err := ParseRef(ws.Cells[i].R)
		if err != nil {
			continue
		}
		cell := Cell{Ref: ref}
		r.decodeCell(&cell, &ws.Cells[i])
		cells[ref] = cell
		if cell.IsBlank() {
			continue
		}
		if !found {
			bounds, found = Range{Min: ref, Max: ref}, true
		} else {
			bounds = bounds.extend(ref)
		}
	}
	if !found {
		return sheet, nil
	}
	if n := bounds.Rows() * bounds.Cols(); n > maxGridCells {
		return nil, fmt.Errorf("content %s spans %d cells, more than %d", bounds, n, maxGridCells)
	}

	sheet.Origin = bounds.Min
	sheet.Rows = make([][]Cell, bounds.Rows())
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, bounds.Cols())
		for j := range sheet.Rows[i] {
			ref := Ref{Col: bounds.Min.Col + j, Row: bounds.Min.Row + i}
			cell, ok := cells[ref]
			if !ok {
				cell = Cell{Ref: ref}
			}
			sheet.Rows[i][j] = cell
		}
	}

	for i := range sheet.Merges {
		g := &sheet.Merges[i]
		for row := max(g.Min.Row, bounds.Min.Row); row <= min(g.Max.Row, bounds.Max.Row); row++ {
			for col := max(g.Min.Col, bounds.Min.Col); col <= min(g.Max.Col, bounds.Max.Col); col++ {
				sheet.Cell(row, col).merge = g
			}
		}
	}

	return sheet, nil
}

func (r *Reader) decodeCell(cell *Cell, cx *cellXML) {
	cell.Style = cx.S
	cell.Formula = cx.F

	switch cx.T {
	case "s":
		cell.Type = Text
		if i, err := strconv.Atoi(cx.V); err == nil && i >= 0 && i < len(r.shared) {
			cell.Value = r.shared[i]
		}
	case "b":
		cell.Type, cell.Value = Boolean, "FALSE"
		if cx.V == "1" {
			cell.Value = "TRUE"
		}
	case "e":
		cell.Type, cell.Value = Error, cx.V
	case "str":
		cell.Type, cell.Value = Text, cx.V
	case "inlineStr":
		cell.Type, cell.Value = Text, richText(cx.InlineText, cx.InlineRuns)
	default:
		if cx.V == "" {
			return
		}
		cell.Type, cell.Value = Number, cx.V
		if r.isDateStyle(cx.S) {
			if s, ok := formatDate(cx.V, r.date1904); ok {
				cell.Type, cell.Value = Date, s
			}
		}
	}
}

func (r *Reader) isDateStyle(style int) bool {
	return style >= 0 && style < len(r.dateStyles) && r.dateStyles[style]
}

// Close releases resources associated with the Reader. Closing twice is
// harmless.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// SheetCount returns the number of readable sheets.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of the readable sheets in workbook order.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Skipped returns the names of sheets that were listed in the workbook but
// could not be read.
func (r *Reader) Skipped() []string {
	return append([]string(nil), r.skipped...)
}

// Sheet returns the readable sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found (have %s)", name, strings.Join(r.SheetNames(), ", "))
}
