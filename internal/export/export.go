// Package export turns one source image into one encoded file.
package export

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"

	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/AnyUserName/imgconv/internal/hasher"
	"github.com/AnyUserName/imgconv/internal/platform"
	"github.com/pkg/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Config holds the collaborators of an Exporter. The zero value is usable.
type Config struct {
	// Registry supplies encoders; nil means encoder.NewRegistry().
	Registry *encoder.Registry
	// Opener is invoked for requests with OpenResult set. nil disables it.
	Opener platform.Opener
	// Verbose enables progress lines through Logf.
	Verbose bool
	// Logf receives progress lines; nil writes to stderr.
	Logf func(format string, args ...any)
}

// Result describes a successful export.
type Result struct {
	Path         string
	Format       encoder.Format
	SourceFormat string
	SourceWidth  int
	SourceHeight int
	// IconSizes is set for ICO exports.
	IconSizes []int
	Bytes     int64
	Hash      string // first 16 hex chars of xxhash64 of the written bytes
	// SourceHadAlpha reports translucent pixels in the source; Flattened
	// reports that they were composited away for JPEG.
	SourceHadAlpha bool
	Flattened      bool
	Opened         bool
}

// Exporter runs export requests. It holds no per-request state, so one
// Exporter may serve concurrent calls targeting different destinations.
type Exporter struct {
	cfg Config
}

// New creates an exporter.
func New(cfg Config) *Exporter {
	if cfg.Registry == nil {
		cfg.Registry = encoder.NewRegistry()
	}
	if cfg.Logf == nil {
		cfg.Logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[imgconv] "+format+"\n", args...)
		}
	}
	return &Exporter{cfg: cfg}
}

// Export runs req with a default exporter.
func Export(req Request) (*Result, error) {
	return New(Config{}).Export(req)
}

// Export decodes req.SourcePath, encodes it as req.Format and writes it to
// req.DestPath. Nothing is written unless encoding succeeded, and a failed
// write leaves no partial file behind.
func (e *Exporter) Export(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.normalized()

	img, srcFormat, err := decodeFile(req.SourcePath)
	if err != nil {
		return nil, &DecodeError{Path: req.SourcePath, Err: err}
	}
	b := img.Bounds()
	e.logVerbose("decoded %s (%s, %dx%d)", req.SourcePath, srcFormat, b.Dx(), b.Dy())

	hasAlpha := encoder.HasAlpha(img)
	flattened := false
	if req.Format == encoder.JPEG && hasAlpha {
		if req.Alpha == AlphaReject {
			return nil, &UnsupportedConversionError{
				Format: req.Format,
				Reason: "source has transparent pixels and JPEG has no alpha channel",
			}
		}
		flattened = true
		e.logVerbose("flattening alpha onto white for %s", req.Format)
	}

	enc := e.encoderFor(req)
	if enc == nil {
		return nil, &EncodeError{Format: req.Format, Err: errors.New("no encoder registered")}
	}
	data, err := enc.Encode(encoder.Scanned{Image: img, Alpha: hasAlpha}, req.Quality)
	if err != nil {
		return nil, &EncodeError{Format: req.Format, Err: err}
	}

	if err := writeAtomic(req.DestPath, data); err != nil {
		return nil, &WriteError{Path: req.DestPath, Err: err}
	}
	e.logVerbose("wrote %s (%s, %d bytes)", req.DestPath, req.Format, len(data))

	res := &Result{
		Path:           req.DestPath,
		Format:         req.Format,
		SourceFormat:   srcFormat,
		SourceWidth:    b.Dx(),
		SourceHeight:   b.Dy(),
		Bytes:          int64(len(data)),
		Hash:           hasher.ContentHash(data, 16),
		SourceHadAlpha: hasAlpha,
		Flattened:      flattened,
	}
	if req.Format == encoder.ICO {
		res.IconSizes = req.IconSizes
	}

	// Icons rarely have a useful default viewer.
	if req.OpenResult && e.cfg.Opener != nil && req.Format != encoder.ICO {
		if err := e.cfg.Opener.Open(req.DestPath); err != nil {
			e.cfg.Logf("warn: open %s: %v", req.DestPath, err)
		} else {
			res.Opened = true
		}
	}
	return res, nil
}

func (e *Exporter) encoderFor(req Request) encoder.Encoder {
	if req.Format == encoder.ICO && !slices.Equal(req.IconSizes, encoder.DefaultIconSizes) {
		return &encoder.ICOEncoder{Sizes: req.IconSizes}
	}
	return e.cfg.Registry.Get(req.Format)
}

func (e *Exporter) logVerbose(format string, args ...any) {
	if e.cfg.Verbose {
		e.cfg.Logf(format, args...)
	}
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return image.Decode(f)
}

// writeAtomic writes data next to path and renames it into place, so readers
// never see a half-written file and an existing file survives a failure.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), destMode(path)); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// destMode keeps the permissions of an existing regular file at path.
func destMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644
}
