package encoder

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// MaxIconSize is the largest edge an ICO directory entry can describe.
const MaxIconSize = 256

// DefaultIconSizes is the icon size set used when none is requested.
var DefaultIconSizes = []int{32}

// ErrEmptySource is returned when an image has no pixels to rasterise.
var ErrEmptySource = errors.New("source image has zero area")

const (
	icoHeaderLen = 6
	icoEntryLen  = 16
)

// iconDir is the ICONDIR header.
type iconDir struct {
	Reserved uint16
	Type     uint16 // 1 = icon
	Count    uint16
}

// iconDirEntry is one ICONDIRENTRY. Width and Height of 0 mean 256.
type iconDirEntry struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

// ICOEncoder writes a multi-resolution icon. Each entry is a square
// PNG-compressed frame of one of Sizes (DefaultIconSizes when empty).
// Quality is ignored.
type ICOEncoder struct {
	Sizes []int
}

func (e *ICOEncoder) Format() Format    { return ICO }
func (e *ICOEncoder) Extension() string { return "ico" }
func (e *ICOEncoder) Lossy() bool       { return true }

func (e *ICOEncoder) sizes() []int {
	if len(e.Sizes) == 0 {
		return DefaultIconSizes
	}
	return e.Sizes
}

// ValidateIconSizes checks that every size fits in an ICO directory entry.
func ValidateIconSizes(sizes []int) error {
	for _, s := range sizes {
		if s < 1 || s > MaxIconSize {
			return errors.Errorf("icon size %d outside 1..%d", s, MaxIconSize)
		}
	}
	return nil
}

func (e *ICOEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	img = plain(img)
	if img.Bounds().Empty() {
		return nil, ErrEmptySource
	}
	sizes := e.sizes()
	if err := ValidateIconSizes(sizes); err != nil {
		return nil, err
	}

	frames := make([][]byte, len(sizes))
	for i, s := range sizes {
		var buf bytes.Buffer
		if err := png.Encode(&buf, Rasterize(img, s)); err != nil {
			return nil, errors.Wrapf(err, "encode %dx%d entry", s, s)
		}
		frames[i] = buf.Bytes()
	}
	return writeICO(sizes, frames)
}

// Rasterize scales img to fit a size×size square without distorting it and
// centres the result on a transparent canvas. Smaller sources are upscaled.
func Rasterize(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), size)
	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{})
	return imaging.PasteCenter(canvas, resized)
}

func fitSize(srcW, srcH, size int) (int, int) {
	if srcW >= srcH {
		h := int(math.Round(float64(srcH) * float64(size) / float64(srcW)))
		return size, max(h, 1)
	}
	w := int(math.Round(float64(srcW) * float64(size) / float64(srcH)))
	return max(w, 1), size
}

func writeICO(sizes []int, frames [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	hdr := iconDir{Type: 1, Count: uint16(len(frames))}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}

	offset := uint32(icoHeaderLen + icoEntryLen*len(frames))
	for i, f := range frames {
		dim := uint8(sizes[i]) // 256 wraps to 0
		entry := iconDirEntry{
			Width:       dim,
			Height:      dim,
			Planes:      1,
			BitCount:    32,
			BytesInRes:  uint32(len(f)),
			ImageOffset: offset,
		}
		if err := binary.Write(&buf, binary.LittleEndian, entry); err != nil {
			return nil, err
		}
		offset += uint32(len(f))
	}
	for _, f := range frames {
		buf.Write(f)
	}
	return buf.Bytes(), nil
}
