//go:build ignore

// gen_fixtures creates sample inputs for a manual smoke test of the window:
// one file per supported source container plus the awkward shapes (alpha,
// wide, tiny) the exporter has to handle.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	writeJPEG(filepath.Join(dir, "photo.jpg"), gradient(400, 225))
	writePNG(filepath.Join(dir, "logo-alpha.png"), alphaGradient(100, 100))
	writePNG(filepath.Join(dir, "banner-wide.png"), gradient(640, 48))
	writePNG(filepath.Join(dir, "tiny.png"), gradient(3, 3))
	writeGIF(filepath.Join(dir, "swatch.gif"), gradient(120, 120))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 5 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func create(path string) *os.File {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	return f
}

func writePNG(path string, img image.Image) {
	f := create(path)
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img image.Image) {
	f := create(path)
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}

func writeGIF(path string, img image.Image) {
	pm := image.NewPaletted(img.Bounds(), palette.WebSafe)
	draw.FloydSteinberg.Draw(pm, pm.Rect, img, image.Point{})
	f := create(path)
	defer f.Close()
	if err := gif.Encode(f, pm, nil); err != nil {
		panic(err)
	}
}
