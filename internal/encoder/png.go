package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// The output decodes to exactly the input pixels, alpha included.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() Format    { return PNG }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Lossy() bool       { return false }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, plain(img)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
