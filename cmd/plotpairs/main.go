// Command plotpairs prints the (x, y) pairs of two columns of a CSV, TSV,
// XLSX, HTML, Arrow IPC or image file.
//
// Usage:
//
//	plotpairs [flags] FILE
//
// Pairs are written to standard output as a JSON array of [x, y] arrays or
// as tab-separated lines. Warnings go to standard error.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/tsawler/plotpairs"
	"github.com/tsawler/plotpairs/pairs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errUsage marks errors that should exit with status 2.
var errUsage = errors.New("usage")

type config struct {
	x, y       int
	xcol, ycol string
	null       string
	sheet      string
	table      int
	header     bool
	encoding   string
	delimiter  string
	optsFile   string
	lang       string
	format     string
	file       string
	set        map[string]bool
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "plotpairs: ", 0)

	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// the flag package has already reported bare usage errors
		if err != errUsage {
			logger.Println(err)
		}
		return 2
	}

	ext, err := cfg.extractor()
	if err != nil {
		logger.Println(err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	points, warnings, err := ext.Pairs()
	for _, w := range warnings {
		logger.Println("warning:", w)
	}
	if err != nil {
		logger.Println(err)
		return 1
	}

	if err := write(stdout, cfg.format, points); err != nil {
		logger.Println(err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{set: map[string]bool{}}

	fs := flag.NewFlagSet("plotpairs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.x, "x", 0, "x column index (0-indexed)")
	fs.IntVar(&cfg.y, "y", 1, "y column index (0-indexed)")
	fs.StringVar(&cfg.xcol, "xcol", "", "x column name (overrides -x)")
	fs.StringVar(&cfg.ycol, "ycol", "", "y column name (overrides -y)")
	fs.StringVar(&cfg.null, "null", "null", `null value mode: "null", "connected" or "null as zero"`)
	fs.StringVar(&cfg.sheet, "sheet", "", "XLSX sheet name or 0-indexed position")
	fs.IntVar(&cfg.table, "table", 0, "HTML table position (0-indexed)")
	fs.BoolVar(&cfg.header, "header", false, "read the first row as column names")
	fs.StringVar(&cfg.encoding, "encoding", "", `input encoding, e.g. "windows-1252"`)
	fs.StringVar(&cfg.delimiter, "delimiter", "", `field delimiter for CSV input ("tab" for a tab)`)
	fs.StringVar(&cfg.optsFile, "config", "", `JSON file with {"xIndex", "yIndex", "nullValueMode"}`)
	fs.StringVar(&cfg.lang, "lang", "", `OCR language for image input, e.g. "eng+deu"`)
	fs.StringVar(&cfg.format, "format", "json", "output format: json or tsv")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: plotpairs [flags] FILE")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errUsage
	}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errUsage
	}
	cfg.file = fs.Arg(0)

	if cfg.format != "json" && cfg.format != "tsv" {
		return nil, fmt.Errorf("%w: unknown output format %q", errUsage, cfg.format)
	}
	return cfg, nil
}

// extractor builds the extraction chain. Options from -config are applied
// first so that explicit flags override them.
func (c *config) extractor() (*plotpairs.Extractor, error) {
	ext := plotpairs.Open(c.file)

	if c.optsFile != "" {
		opts, err := loadOptions(c.optsFile)
		if err != nil {
			return nil, err
		}
		ext = ext.WithOptions(opts)
	}

	if c.optsFile == "" || c.set["x"] {
		ext = ext.X(c.x)
	}
	if c.optsFile == "" || c.set["y"] {
		ext = ext.Y(c.y)
	}
	if c.xcol != "" {
		ext = ext.XColumn(c.xcol)
	}
	if c.ycol != "" {
		ext = ext.YColumn(c.ycol)
	}
	if c.optsFile == "" || c.set["null"] {
		mode, err := pairs.ParseNullValueMode(c.null)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		ext = ext.NullValueMode(mode)
	}

	if c.sheet != "" {
		if i, err := strconv.Atoi(c.sheet); err == nil {
			ext = ext.Sheet(i)
		} else {
			ext = ext.SheetName(c.sheet)
		}
	}
	ext = ext.Table(c.table)
	if c.header {
		ext = ext.Header()
	}
	if c.encoding != "" {
		ext = ext.Encoding(c.encoding)
	}
	if c.delimiter != "" {
		r, err := parseDelimiter(c.delimiter)
		if err != nil {
			return nil, err
		}
		ext = ext.Delimiter(r)
	}
	if c.lang != "" {
		ext = ext.OCRLanguage(c.lang)
	}
	return ext, nil
}

func loadOptions(path string) (pairs.Options, error) {
	var opts pairs.Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return opts, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: invalid delimiter %q", errUsage, s)
	}
	return r, nil
}

func write(w io.Writer, format string, points []pairs.Pair) error {
	if format == "tsv" {
		for _, p := range points {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", p.X, p.Y); err != nil {
				return err
			}
		}
		return nil
	}
	return json.NewEncoder(w).Encode(points)
}
