//go:build !ocr

// Package ocr recognizes tables in images of printed or exported charts
// and spreadsheets.
//
// This build has no Tesseract client: New and RecognizeBlock return
// ErrOCRNotEnabled. Image normalization and table text parsing work in
// every build. Rebuild with the "ocr" tag to enable recognition:
//
//	go build -tags ocr
package ocr

// Client stands in for the Tesseract client.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(cfg Config) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close does nothing, also on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeBlock returns ErrOCRNotEnabled.
func (c *Client) RecognizeBlock(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
