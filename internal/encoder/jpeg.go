package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
)

// DefaultQuality matches the quality picker's initial value: no extra
// compression beyond what JPEG itself does.
const DefaultQuality = 100

// JPEGEncoder encodes images to JPEG using Go's standard library.
// JPEG has no alpha plane, so translucent sources are composited onto
// Background (white when nil) first.
type JPEGEncoder struct {
	Background color.Color
}

func (e *JPEGEncoder) Format() Format    { return JPEG }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Lossy() bool       { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	img, alpha := scan(img)
	if alpha {
		bg := e.Background
		if bg == nil {
			bg = color.White
		}
		img = Flatten(img, bg)
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024) // typical photo

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
