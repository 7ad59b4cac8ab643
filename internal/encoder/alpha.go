package encoder

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Scanned is an image whose alpha scan has already been done. Encoders trust
// Alpha instead of walking the pixels again.
type Scanned struct {
	image.Image
	Alpha bool
}

// scan returns the image to encode and whether it has translucent pixels.
func scan(img image.Image) (image.Image, bool) {
	if s, ok := img.(Scanned); ok {
		return s.Image, s.Alpha
	}
	return img, HasAlpha(img)
}

// plain strips a Scanned wrapper so codecs see the concrete image type.
func plain(img image.Image) image.Image {
	if s, ok := img.(Scanned); ok {
		return s.Image
	}
	return img
}

// HasAlpha reports whether any pixel of img is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case Scanned:
		return src.Alpha
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	case *image.Paletted:
		// Only palette entries that are actually used count.
		translucent := make([]bool, len(src.Palette))
		found := false
		for i, c := range src.Palette {
			if _, _, _, a := c.RGBA(); a < 0xffff {
				translucent[i] = true
				found = true
			}
		}
		if !found {
			return false
		}
		for _, idx := range src.Pix {
			if int(idx) < len(translucent) && translucent[idx] {
				return true
			}
		}
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

// Flatten composites img onto an opaque background of colour bg.
// The result has the same size as img, anchored at the origin.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
