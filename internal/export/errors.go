package export

import (
	"fmt"

	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRequest is wrapped by every Request.Validate failure.
	ErrInvalidRequest = errors.New("invalid export request")
	// ErrAlphaUnsupported is the cause of an UnsupportedConversionError.
	ErrAlphaUnsupported = errors.New("target format has no alpha channel")
)

// DecodeError means the source could not be opened or is not an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError means the encoder for Format rejected the decoded image.
type EncodeError struct {
	Format encoder.Format
	Err    error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode %s: %v", e.Format, e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// WriteError means the destination could not be written. Err is the
// underlying OS error.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// UnsupportedConversionError is returned under AlphaReject when a
// translucent source targets a format without alpha.
type UnsupportedConversionError struct {
	Format encoder.Format
	Reason string
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("cannot convert to %s: %s", e.Format, e.Reason)
}

func (e *UnsupportedConversionError) Unwrap() error { return ErrAlphaUnsupported }
