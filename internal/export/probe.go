package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// SourceInfo is what can be learned about a source without decoding pixels.
type SourceInfo struct {
	Path   string
	Format string
	Width  int
	Height int
	Size   int64
}

// Probe reads the header of the image at path.
func Probe(path string) (*SourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &SourceInfo{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   info.Size(),
	}, nil
}

func (s SourceInfo) String() string {
	return fmt.Sprintf("%s  (%s, %d×%d, %s)",
		filepath.Base(s.Path), s.Format, s.Width, s.Height, HumanSize(s.Size))
}

// HumanSize formats a byte count as B, KB or MB.
func HumanSize(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
