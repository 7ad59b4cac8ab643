package encoder

import (
	"image"
	"strings"

	"github.com/pkg/errors"
)

// Format names an output container.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	ICO  Format = "ico"
)

// ErrUnknownFormat is returned by ParseFormat for names it does not recognise.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat resolves a user-facing format name ("JPEG", "jpg", "Png", ...).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "ico":
		return ICO, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

func (f Format) String() string { return string(f) }

// Label is the upper-case name shown in the format picker.
func (f Format) Label() string { return strings.ToUpper(string(f)) }

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output container this encoder produces.
	Format() Format

	// Encode converts the image to bytes. quality (1-100) is honoured only
	// by lossy encoders; the others accept and ignore it.
	Encode(img image.Image, quality int) ([]byte, error)

	// Lossy reports whether decoded output can differ from the input pixels.
	Lossy() bool

	// Extension returns the file extension without dot.
	Extension() string
}
