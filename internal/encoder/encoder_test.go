package encoder

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

// halfTransparent is opaque red on the right half and fully transparent on
// the left half.
func halfTransparent(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"JPEG": JPEG,
		"jpg":  JPEG,
		" Png": PNG,
		"gif":  GIF,
		"ICO":  ICO,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("webp")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "JPEG", JPEG.Label())
	assert.Equal(t, "ico", ICO.String())
}

func TestRegistry_AllFormats(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Format{JPEG, PNG, GIF, ICO}, r.Available())
	assert.Equal(t, "encoders: jpeg, png, gif, ico", r.String())

	for _, f := range r.Available() {
		enc := r.Get(f)
		require.NotNil(t, enc, f)
		assert.Equal(t, f, enc.Format())
		assert.NotEmpty(t, enc.Extension())
	}
	assert.Nil(t, r.Get("webp"))
	assert.NotNil(t, r.Get("PNG"))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	custom := &ICOEncoder{Sizes: []int{16, 48}}
	r.Register(custom)
	assert.Same(t, custom, r.Get(ICO))
}

func TestLossy(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Get(JPEG).Lossy())
	assert.False(t, r.Get(PNG).Lossy())
	assert.True(t, r.Get(GIF).Lossy())
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry
	assert.Nil(t, r.Get(PNG))
	assert.Empty(t, r.Available())

	r.Register(&PNGEncoder{})
	assert.Equal(t, []Format{PNG}, r.Available())
}
