//go:build ocr

// Package ocr recognizes tables in images of printed or exported charts
// and spreadsheets.
//
// Recognition uses the Tesseract engine through gosseract, so Tesseract and
// its language data must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client is a Tesseract session set up for single blocks of tabular text.
// It is not safe for concurrent use.
type Client struct {
	tess *gosseract.Client
}

// New starts a client. Close it to release the Tesseract session.
func New(cfg Config) (*Client, error) {
	tess := gosseract.NewClient()
	if err := configure(tess, cfg); err != nil {
		tess.Close()
		return nil, err
	}
	return &Client{tess: tess}, nil
}

func configure(tess *gosseract.Client, cfg Config) error {
	if err := tess.SetLanguage(cfg.languages()...); err != nil {
		return fmt.Errorf("setting language: %w", err)
	}
	if err := tess.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return fmt.Errorf("setting page segmentation: %w", err)
	}
	// Column gaps survive as runs of spaces.
	if err := tess.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return fmt.Errorf("setting interword spacing: %w", err)
	}
	if cfg.Whitelist != "" {
		if err := tess.SetWhitelist(cfg.Whitelist); err != nil {
			return fmt.Errorf("setting whitelist: %w", err)
		}
	}
	return nil
}

// Close ends the Tesseract session. Closing twice, or closing a nil
// client, is harmless.
func (c *Client) Close() error {
	if c == nil || c.tess == nil {
		return nil
	}
	err := c.tess.Close()
	c.tess = nil
	return err
}

// RecognizeBlock returns the text of an image (PNG, TIFF, JPEG, ...) with
// surrounding whitespace trimmed.
func (c *Client) RecognizeBlock(imageData []byte) (string, error) {
	if c == nil || c.tess == nil {
		return "", errClosed
	}
	if err := c.tess.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("loading image: %w", err)
	}
	text, err := c.tess.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
