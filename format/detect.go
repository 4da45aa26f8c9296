// Package format provides input format detection for plotpairs.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported dataset source format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CSV indicates comma-separated values.
	CSV
	// TSV indicates tab-separated values.
	TSV
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// HTML indicates an HTML document containing tables.
	HTML
	// Image indicates a scanned table image (PNG, JPEG, GIF, TIFF, BMP, WebP).
	Image
	// Arrow indicates an Apache Arrow IPC file (also known as Feather v2).
	Arrow
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	case XLSX:
		return "XLSX"
	case HTML:
		return "HTML"
	case Image:
		return "Image"
	case Arrow:
		return "Arrow"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	case XLSX:
		return ".xlsx"
	case HTML:
		return ".html"
	case Image:
		return ".png"
	case Arrow:
		return ".arrow"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return CSV
	case ".tsv", ".tab":
		return TSV
	case ".xlsx":
		return XLSX
	case ".html", ".htm":
		return HTML
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		return Image
	case ".arrow", ".feather", ".ipc":
		return Arrow
	default:
		return Unknown
	}
}

// DetectFromMagic checks magic bytes to determine format.
// Returns Unknown for ZIP archives (use DetectFromReader to look inside)
// and for plain text, which cannot be told apart from CSV or TSV by
// content alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	if isImageMagic(data) {
		return Image
	}

	if bytes.HasPrefix(data, []byte("ARROW1")) {
		return Arrow
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

var imageMagic = [][]byte{
	{0x89, 'P', 'N', 'G'},  // PNG
	{0xFF, 0xD8, 0xFF},     // JPEG
	[]byte("GIF8"),         // GIF
	{'I', 'I', 0x2A, 0x00}, // TIFF little-endian
	{'M', 'M', 0x00, 0x2A}, // TIFF big-endian
}

func isImageMagic(data []byte) bool {
	for _, m := range imageMagic {
		if bytes.HasPrefix(data, m) {
			return true
		}
	}
	// BMP: "BM", then size, then four reserved zero bytes. A bare "BM"
	// prefix is too common in text headers to trust on its own.
	if len(data) >= 14 && data[0] == 'B' && data[1] == 'M' && bytes.Equal(data[6:10], []byte{0, 0, 0, 0}) {
		return true
	}
	// WebP: RIFF....WEBP
	return len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP"
}

func isZIPMagic(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") || strings.HasPrefix(upper, "<TABLE") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}

	return false
}

// DetectFromReader inspects the content to determine format. It can tell
// an XLSX workbook apart from other ZIP containers.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIPMagic(magic) {
		return detectZIPFormat(r, size)
	}

	return DetectFromMagic(magic), nil
}

// detectZIPFormat reports XLSX when the archive carries a workbook part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX, nil
		}
	}

	return Unknown, nil
}
