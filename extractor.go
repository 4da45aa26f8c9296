package plotpairs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/plotpairs/arrowdata"
	"github.com/tsawler/plotpairs/csvdoc"
	"github.com/tsawler/plotpairs/format"
	"github.com/tsawler/plotpairs/htmldoc"
	"github.com/tsawler/plotpairs/model"
	"github.com/tsawler/plotpairs/ocr"
	"github.com/tsawler/plotpairs/pairs"
	"github.com/tsawler/plotpairs/xlsx"
)

var errNoSource = errors.New("no data source specified")

// Extractor provides a fluent interface for extracting (x, y) pairs from
// CSV, TSV, XLSX, HTML, Arrow IPC and image files, or from in-memory tables
// and frames.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set)
	filename string
	format   format.Format
	table    *model.Table
	frame    *model.Frame

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		format:   e.format,
		table:    e.table,
		frame:    e.frame,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Sheet selects a workbook sheet by position (0-indexed). Only XLSX files
// have sheets.
//
// Example:
//
//	points, _, err := plotpairs.Open("book.xlsx").Sheet(2).Pairs()
func (e *Extractor) Sheet(index int) *Extractor {
	newExt := e.clone()
	if index < 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("invalid sheet index %d", index)
	}
	newExt.options.sheet = index
	newExt.options.sheetName = ""
	return newExt
}

// SheetName selects a workbook sheet by name.
//
// Example:
//
//	points, _, err := plotpairs.Open("book.xlsx").SheetName("March").Pairs()
func (e *Extractor) SheetName(name string) *Extractor {
	newExt := e.clone()
	newExt.options.sheetName = name
	return newExt
}

// Table selects an HTML table by position (0-indexed). Tables without rows
// are not counted.
//
// Example:
//
//	points, _, err := plotpairs.Open("page.html").Table(1).Pairs()
func (e *Extractor) Table(index int) *Extractor {
	newExt := e.clone()
	if index < 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("invalid table index %d", index)
	}
	newExt.options.table = index
	return newExt
}

// Header reads the first row as column names rather than data.
//
// Example:
//
//	points, _, err := plotpairs.Open("readings.csv").Header().Pairs()
func (e *Extractor) Header() *Extractor {
	newExt := e.clone()
	newExt.options.header = true
	return newExt
}

// X selects the column holding x values by position (0-indexed).
//
// Example:
//
//	points, _, err := plotpairs.Open("readings.csv").X(2).Y(0).Pairs()
func (e *Extractor) X(index int) *Extractor {
	newExt := e.clone()
	newExt.options.xIndex = index
	newExt.options.xColumn = ""
	return newExt
}

// Y selects the column holding y values by position (0-indexed).
func (e *Extractor) Y(index int) *Extractor {
	newExt := e.clone()
	newExt.options.yIndex = index
	newExt.options.yColumn = ""
	return newExt
}

// XColumn selects the column holding x values by name. Names come from the
// header row, or are A, B, C... when there is none.
//
// Example:
//
//	points, _, err := plotpairs.Open("readings.csv").
//	    Header().
//	    XColumn("time").
//	    YColumn("celsius").
//	    Pairs()
func (e *Extractor) XColumn(name string) *Extractor {
	newExt := e.clone()
	newExt.options.xColumn = name
	return newExt
}

// YColumn selects the column holding y values by name.
func (e *Extractor) YColumn(name string) *Extractor {
	newExt := e.clone()
	newExt.options.yColumn = name
	return newExt
}

// NullValueMode sets how rows with a missing y value are handled. The
// default is pairs.Passthrough.
//
// Example:
//
//	points, _, err := plotpairs.Open("readings.csv").
//	    NullValueMode(pairs.Ignore).
//	    Pairs()
func (e *Extractor) NullValueMode(mode pairs.NullValueMode) *Extractor {
	newExt := e.clone()
	newExt.options.nullValueMode = mode
	return newExt
}

// WithOptions applies column indices and mode from a pairs.Options value,
// replacing any column names set earlier.
//
// Example:
//
//	opts := pairs.Options{XIndex: 0, YIndex: 3, NullValueMode: pairs.AsZero}
//	points, _, err := plotpairs.Open("readings.csv").WithOptions(opts).Pairs()
func (e *Extractor) WithOptions(opts pairs.Options) *Extractor {
	newExt := e.clone()
	newExt.options.xIndex = opts.XIndex
	newExt.options.yIndex = opts.YIndex
	newExt.options.xColumn = ""
	newExt.options.yColumn = ""
	newExt.options.nullValueMode = opts.NullValueMode
	return newExt
}

// Encoding sets the character encoding of CSV, TSV and HTML input, for
// example "windows-1252" or "utf-16le". A byte order mark still takes
// precedence.
func (e *Extractor) Encoding(name string) *Extractor {
	newExt := e.clone()
	newExt.options.encoding = name
	return newExt
}

// Delimiter sets the field delimiter of CSV and TSV input. By default TSV
// files use a tab and CSV files are sniffed.
func (e *Extractor) Delimiter(r rune) *Extractor {
	newExt := e.clone()
	newExt.options.delimiter = r
	return newExt
}

// Navigation sets which HTML page chrome (menus, headers, footers,
// sidebars) is skipped when counting tables. The default is
// htmldoc.NavigationExclusionStandard.
//
// Example:
//
//	points, _, err := plotpairs.Open("page.html").
//	    Navigation(htmldoc.NavigationExclusionNone).
//	    Table(3).
//	    Pairs()
func (e *Extractor) Navigation(mode htmldoc.NavigationExclusionMode) *Extractor {
	newExt := e.clone()
	newExt.options.navigation = mode
	return newExt
}

// OCRLanguage sets the Tesseract language(s) used for image input, such as
// "eng" or "eng+deu".
func (e *Extractor) OCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrLanguage = lang
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Frame reads the source and returns it as a typed frame.
//
// Example:
//
//	frame, warnings, err := plotpairs.Open("readings.csv").Header().Frame()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(frame.ColumnNames())
func (e *Extractor) Frame() (*model.Frame, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if e.frame != nil {
		return e.frame, nil, nil
	}

	f, err := e.resolveFormat()
	if err != nil {
		return nil, nil, err
	}
	if f == format.Arrow {
		// Arrow columns are already typed.
		frame, err := arrowdata.ReadFile(e.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open Arrow file: %w", err)
		}
		return frame, nil, nil
	}

	table, warnings, err := e.loadTable(f)
	if err != nil {
		return nil, warnings, err
	}

	if table.IsRagged() {
		warnings = append(warnings, Warning{
			Code:    WarningRaggedRows,
			Message: fmt.Sprintf("rows differ in length; short rows padded to %d columns", table.ColCount()),
		})
	}

	frame, err := model.FrameFromTable(table, model.FrameOptions{
		HeaderRow: e.options.header || table.HasHeader,
	})
	if err != nil {
		return nil, warnings, fmt.Errorf("building frame: %w", err)
	}
	return frame, warnings, nil
}

// Pairs reads the source and returns the (x, y) pairs of the selected
// columns, applying the null value mode.
//
// Example:
//
//	points, warnings, err := plotpairs.Open("readings.csv").Pairs()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", plotpairs.FormatWarnings(warnings))
//	}
func (e *Extractor) Pairs() ([]pairs.Pair, []Warning, error) {
	frame, warnings, err := e.Frame()
	if err != nil {
		return nil, warnings, err
	}

	xIndex, err := resolveColumn(frame, "x", e.options.xColumn, e.options.xIndex)
	if err != nil {
		return nil, warnings, err
	}
	yIndex, err := resolveColumn(frame, "y", e.options.yColumn, e.options.yIndex)
	if err != nil {
		return nil, warnings, err
	}

	out, err := pairs.Extract(frame, pairs.Options{
		XIndex:        xIndex,
		YIndex:        yIndex,
		NullValueMode: e.options.nullValueMode,
	})
	if err != nil {
		return nil, warnings, err
	}

	if dropped := frame.RowCount() - len(out); dropped > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningDroppedRows,
			Message: fmt.Sprintf("%d of %d rows produced no pair", dropped, frame.RowCount()),
		})
	}
	return out, warnings, nil
}

// resolveColumn maps a column name, when given, to its index.
func resolveColumn(frame *model.Frame, axis, name string, index int) (int, error) {
	if name == "" {
		return index, nil
	}
	i, ok := frame.ColumnIndex(name)
	if !ok {
		return 0, fmt.Errorf("%s column %q not found (have %s)", axis, name, strings.Join(frame.ColumnNames(), ", "))
	}
	return i, nil
}

// resolveFormat returns the format of the file source, inspecting its
// contents when the extension says nothing. In-memory tables report Unknown.
func (e *Extractor) resolveFormat() (format.Format, error) {
	if e.table != nil {
		return format.Unknown, nil
	}
	if e.filename == "" {
		return format.Unknown, errNoSource
	}
	if e.format != format.Unknown {
		return e.format, nil
	}
	return detectFile(e.filename)
}

// loadTable reads the configured source into a text table.
func (e *Extractor) loadTable(f format.Format) (*model.Table, []Warning, error) {
	if e.table != nil {
		return e.table, nil, nil
	}

	switch f {
	case format.CSV, format.TSV:
		return e.loadDelimited(f)
	case format.XLSX:
		return e.loadWorkbook()
	case format.HTML:
		return e.loadHTML()
	case format.Image:
		return e.loadImage()
	default:
		// Plain text has no magic bytes; read it as CSV.
		return e.loadDelimited(format.CSV)
	}
}

// detectFile inspects the file contents when the extension says nothing.
func detectFile(filename string) (format.Format, error) {
	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("opening file: %w", err)
	}
	f, err := format.DetectFromReader(file, info.Size())
	if err != nil {
		return format.Unknown, fmt.Errorf("detecting format: %w", err)
	}
	return f, nil
}

func (e *Extractor) loadDelimited(f format.Format) (*model.Table, []Warning, error) {
	delim := e.options.delimiter
	if delim == 0 && f == format.TSV {
		delim = '\t'
	}

	r, err := csvdoc.Open(e.filename, csvdoc.Options{
		Delimiter: delim,
		Encoding:  e.options.encoding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", f, err)
	}
	return r.Table(), nil, nil
}

func (e *Extractor) loadWorkbook() (*model.Table, []Warning, error) {
	r, err := xlsx.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer r.Close()

	var warnings []Warning
	if skipped := r.Skipped(); len(skipped) > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningSkippedSheets,
			Message: fmt.Sprintf("could not read sheets: %s", strings.Join(skipped, ", ")),
		})
	}

	var sheet *xlsx.Sheet
	if e.options.sheetName != "" {
		sheet, err = r.SheetByName(e.options.sheetName)
	} else {
		sheet, err = r.Sheet(e.options.sheet)
	}
	if err != nil {
		return nil, warnings, err
	}
	return r.Table(sheet), warnings, nil
}

func (e *Extractor) loadHTML() (*model.Table, []Warning, error) {
	file, err := os.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open HTML: %w", err)
	}
	defer file.Close()

	opts := htmldoc.Options{Navigation: e.options.navigation}
	if e.options.encoding != "" {
		opts.ContentType = "text/html; charset=" + e.options.encoding
	}
	r, err := htmldoc.OpenReaderWithOptions(file, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open HTML: %w", err)
	}
	defer r.Close()

	var warnings []Warning
	if n := r.ExcludedTables(); n > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningExcludedTables,
			Message: fmt.Sprintf("%d tables in navigation or page chrome skipped", n),
		})
	}

	table, err := r.Table(e.options.table)
	if err != nil {
		return nil, warnings, err
	}

	if n := r.SpannedCells(); n > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningSpannedCells,
			Message: fmt.Sprintf("%d cells filled from rowspan or colspan", n),
		})
	}
	return table, warnings, nil
}

func (e *Extractor) loadImage() (*model.Table, []Warning, error) {
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}

	var cfg ocr.Config
	if e.options.ocrLanguage != "" {
		cfg.Languages = strings.Split(e.options.ocrLanguage, "+")
	}
	client, err := ocr.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer client.Close()

	table, err := ocr.RecognizeTable(client, data)
	if err != nil {
		return nil, nil, err
	}

	warnings := []Warning{{
		Code:    WarningOCR,
		Message: fmt.Sprintf("table recognized from image (%d rows); values may contain recognition errors", table.RowCount()),
	}}
	return table, warnings, nil
}
