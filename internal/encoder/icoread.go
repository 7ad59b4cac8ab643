package encoder

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

// ErrNotICO is returned for data that is not an icon container.
var ErrNotICO = errors.New("not an ico container")

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// ICOEntry is one image of an icon container.
type ICOEntry struct {
	Width    int
	Height   int
	BitCount int
	Data     []byte // PNG stream or BMP DIB, as stored
}

// IsPNG reports whether the entry payload is PNG-compressed.
func (e ICOEntry) IsPNG() bool { return bytes.HasPrefix(e.Data, pngMagic) }

// ReadICODirectory parses an icon container and returns its entries in
// directory order.
func ReadICODirectory(r io.Reader) ([]ICOEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < icoHeaderLen {
		return nil, ErrNotICO
	}

	var hdr iconDir
	if err := binary.Read(bytes.NewReader(data[:icoHeaderLen]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Reserved != 0 || hdr.Type != 1 || hdr.Count == 0 {
		return nil, ErrNotICO
	}
	dirEnd := icoHeaderLen + icoEntryLen*int(hdr.Count)
	if len(data) < dirEnd {
		return nil, errors.Wrap(ErrNotICO, "truncated directory")
	}

	entries := make([]ICOEntry, 0, hdr.Count)
	rd := bytes.NewReader(data[icoHeaderLen:dirEnd])
	for i := 0; i < int(hdr.Count); i++ {
		var de iconDirEntry
		if err := binary.Read(rd, binary.LittleEndian, &de); err != nil {
			return nil, err
		}
		start, end := int(de.ImageOffset), int(de.ImageOffset)+int(de.BytesInRes)
		if start < dirEnd || end > len(data) || start > end {
			return nil, errors.Wrapf(ErrNotICO, "entry %d out of bounds", i)
		}
		entries = append(entries, ICOEntry{
			Width:    dirDim(de.Width),
			Height:   dirDim(de.Height),
			BitCount: int(de.BitCount),
			Data:     data[start:end],
		})
	}
	return entries, nil
}

func dirDim(v uint8) int {
	if v == 0 {
		return MaxIconSize
	}
	return int(v)
}

func largestEntry(entries []ICOEntry) ICOEntry {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Width*e.Height > best.Width*best.Height {
			best = e
		}
	}
	return best
}

// decodeICO returns the largest entry. Only PNG-compressed entries are
// supported; classic BMP entries are rejected.
func decodeICO(r io.Reader) (image.Image, error) {
	entries, err := ReadICODirectory(r)
	if err != nil {
		return nil, err
	}
	best := largestEntry(entries)
	if !best.IsPNG() {
		return nil, errors.New("ico: bmp-encoded entries are not supported")
	}
	return png.Decode(bytes.NewReader(best.Data))
}

func decodeICOConfig(r io.Reader) (image.Config, error) {
	entries, err := ReadICODirectory(r)
	if err != nil {
		return image.Config{}, err
	}
	best := largestEntry(entries)
	if best.IsPNG() {
		return png.DecodeConfig(bytes.NewReader(best.Data))
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: best.Width, Height: best.Height}, nil
}

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", decodeICO, decodeICOConfig)
}
