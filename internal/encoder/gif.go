package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"

	"golang.org/x/image/draw"
)

// GIFEncoder encodes a single-frame GIF.
//
// Paletted sources with at most 256 colours are written unchanged. Anything
// else is reduced to the Plan9 palette with Floyd-Steinberg dithering, which
// loses colour precision. Translucent sources give up the most redundant
// Plan9 entry to full transparency (partial alpha is not representable in
// GIF); black and white are always kept.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() Format    { return GIF }
func (e *GIFEncoder) Extension() string { return "gif" }
func (e *GIFEncoder) Lossy() bool       { return true }

func (e *GIFEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	pm, ok := plain(img).(*image.Paletted)
	if !ok || len(pm.Palette) > 256 {
		src, alpha := scan(img)
		pm = quantize(src, alpha)
	}

	var buf bytes.Buffer
	if err := gif.Encode(&buf, pm, &gif.Options{NumColors: 256}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// transparentPlan9 is Plan9 with its most redundant entry replaced by
// color.Transparent.
var transparentPlan9 = func() color.Palette {
	p := append(color.Palette(nil), palette.Plan9...)
	p[redundantEntry(p)] = color.Transparent
	return p
}()

// redundantEntry returns the index of the entry closest to some other entry,
// never choosing pure black or pure white.
func redundantEntry(p color.Palette) int {
	best, bestDist := -1, uint32(0)
	for i, c := range p {
		if isBlackOrWhite(c) {
			continue
		}
		nearest := ^uint32(0)
		for j, o := range p {
			if j != i {
				nearest = min(nearest, sqDiff(c, o))
			}
		}
		if best < 0 || nearest < bestDist {
			best, bestDist = i, nearest
		}
	}
	return best
}

func isBlackOrWhite(c color.Color) bool {
	r, g, b, a := c.RGBA()
	if a != 0xffff || r != g || g != b {
		return false
	}
	return r == 0 || r == 0xffff
}

func sqDiff(a, b color.Color) uint32 {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	d := func(x, y uint32) uint32 {
		x, y = x>>8, y>>8
		if x > y {
			return (x - y) * (x - y)
		}
		return (y - x) * (y - x)
	}
	return d(ar, br) + d(ag, bg) + d(ab, bb)
}

func quantize(img image.Image, alpha bool) *image.Paletted {
	b := img.Bounds()
	p := color.Palette(palette.Plan9)
	if alpha {
		p = transparentPlan9
	}
	dst := image.NewPaletted(b, p)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)
	return dst
}
