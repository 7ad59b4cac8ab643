package export

import (
	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/pkg/errors"
)

// DefaultQuality is used when a request leaves Quality at zero.
const DefaultQuality = encoder.DefaultQuality

// AlphaPolicy decides what happens to transparency when the target format
// cannot store it (JPEG).
type AlphaPolicy int

const (
	// AlphaFlatten composites translucent pixels onto white.
	AlphaFlatten AlphaPolicy = iota
	// AlphaReject fails the export with UnsupportedConversionError.
	AlphaReject
)

func (p AlphaPolicy) String() string {
	switch p {
	case AlphaFlatten:
		return "flatten"
	case AlphaReject:
		return "reject"
	}
	return "unknown"
}

// Request describes one export. It is a plain value: build it once every
// input is known and pass it to Export.
type Request struct {
	SourcePath string
	DestPath   string
	Format     encoder.Format
	// Quality is 1..100, or 0 for DefaultQuality. Only JPEG uses it.
	Quality int
	// IconSizes lists the square entry sizes of an ICO export. Empty means
	// encoder.DefaultIconSizes.
	IconSizes []int
	Alpha     AlphaPolicy
	// OpenResult asks the exporter to hand the written file to its Opener.
	OpenResult bool
}

// NewRequest builds a request with default alpha policy and icon sizes.
func NewRequest(source, dest string, format encoder.Format, quality int) Request {
	return Request{
		SourcePath: source,
		DestPath:   dest,
		Format:     format,
		Quality:    quality,
	}
}

// Validate reports the first problem with r, wrapped in ErrInvalidRequest.
func (r Request) Validate() error {
	switch {
	case r.SourcePath == "":
		return errors.Wrap(ErrInvalidRequest, "source path is empty")
	case r.DestPath == "":
		return errors.Wrap(ErrInvalidRequest, "destination path is empty")
	case r.Quality < 0 || r.Quality > 100:
		return errors.Wrapf(ErrInvalidRequest, "quality %d outside 1..100", r.Quality)
	case r.Alpha != AlphaFlatten && r.Alpha != AlphaReject:
		return errors.Wrapf(ErrInvalidRequest, "alpha policy %d", int(r.Alpha))
	}
	if _, err := encoder.ParseFormat(string(r.Format)); err != nil {
		return errors.Wrap(ErrInvalidRequest, err.Error())
	}
	if err := encoder.ValidateIconSizes(r.IconSizes); err != nil {
		return errors.Wrap(ErrInvalidRequest, err.Error())
	}
	return nil
}

// normalized returns a copy with defaults filled in. IconSizes is copied so
// the caller's slice is never shared with an in-flight export.
func (r Request) normalized() Request {
	f, _ := encoder.ParseFormat(string(r.Format))
	r.Format = f
	if r.Quality == 0 {
		r.Quality = DefaultQuality
	}
	if len(r.IconSizes) == 0 {
		r.IconSizes = encoder.DefaultIconSizes
	}
	r.IconSizes = append([]int(nil), r.IconSizes...)
	return r
}
