package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NormalizeImage decodes a PNG, JPEG, GIF, TIFF, BMP or WebP image and
// re-encodes it as an 8-bit grayscale PNG, the form Tesseract reads most
// reliably. It also returns the name of the source format.
func NormalizeImage(data []byte) ([]byte, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, format, fmt.Errorf("decoding image: empty %s image", format)
	}

	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, format, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), format, nil
}
