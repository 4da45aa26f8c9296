package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// ErrNoTable is returned when recognition finds no text rows in an image.
var ErrNoTable = errors.New("no table text recognized")

var errClosed = errors.New("OCR client is closed")

// Config sets up a recognition client.
type Config struct {
	// Languages are Tesseract language codes such as "eng" or "deu".
	// Empty means English.
	Languages []string

	// Whitelist, if set, limits recognition to these characters, for
	// example "0123456789.-" for a purely numeric table.
	Whitelist string
}

func (c Config) languages() []string {
	if len(c.Languages) == 0 {
		return []string{"eng"}
	}
	return c.Languages
}
