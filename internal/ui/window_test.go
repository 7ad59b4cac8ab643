package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/imgconv/internal/config"
	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/AnyUserName/imgconv/internal/export"
)

func newTestWindow(t *testing.T, opts Options) (*MainWindow, *config.Settings) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	settings := config.NewSettings(app)
	exp := export.New(export.Config{Logf: func(string, ...any) {}})
	return NewMainWindow(app, exp, settings, opts), settings
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	path := filepath.Join(dir, "holiday.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestNewMainWindow_Defaults(t *testing.T) {
	w, _ := newTestWindow(t, Options{})

	assert.Equal(t, encoder.JPEG, w.format())
	assert.Equal(t, 100, w.quality())
	assert.True(t, w.openCheck.Checked)
	assert.Equal(t, LabelNoFile, w.fileLabel.Text)
	assert.Equal(t, "100", w.qualityLabel.Text)
	assert.Equal(t, WindowTitle, w.Window().Title())
}

func TestNewMainWindow_OptionsOverrideSettings(t *testing.T) {
	off := false
	w, settings := newTestWindow(t, Options{Format: encoder.GIF, Quality: 40, OpenAfter: &off})

	assert.Equal(t, encoder.GIF, w.format())
	assert.Equal(t, 40, w.quality())
	assert.False(t, w.openCheck.Checked)
	assert.Equal(t, encoder.GIF, settings.Format())
	assert.Equal(t, "40 (not used by GIF)", w.qualityLabel.Text)
}

func TestPreset(t *testing.T) {
	w, _ := newTestWindow(t, Options{Preset: "favicon"})

	assert.Equal(t, encoder.ICO, w.format())
	assert.Equal(t, "favicon", w.presetSelect.Selected)
	assert.Equal(t, []int{16, 32, 48}, w.request("/tmp/x.ico").IconSizes)

	// Changing the format by hand leaves the preset and drops its icon sizes.
	w.formatSelect.SetSelected("PNG")
	assert.Equal(t, PresetCustom, w.presetSelect.Selected)
	assert.Nil(t, w.iconSizes)

	w.presetSelect.SetSelected("web")
	assert.Equal(t, encoder.JPEG, w.format())
	assert.Equal(t, 82, w.quality())
}

func TestRequestFromForm(t *testing.T) {
	w, _ := newTestWindow(t, Options{Format: encoder.JPEG, Quality: 55})
	dir := t.TempDir()
	src := writeSample(t, dir)
	require.NoError(t, w.setSource(src))

	req := w.request(filepath.Join(dir, "out.jpg"))
	assert.Equal(t, src, req.SourcePath)
	assert.Equal(t, encoder.JPEG, req.Format)
	assert.Equal(t, 55, req.Quality)
	assert.True(t, req.OpenResult)
	assert.Nil(t, req.IconSizes)
	assert.NoError(t, req.Validate())
}

func TestSetSource(t *testing.T) {
	w, settings := newTestWindow(t, Options{})
	dir := t.TempDir()
	src := writeSample(t, dir)

	require.NoError(t, w.setSource(src))
	assert.Equal(t, "holiday.png", w.fileLabel.Text)
	assert.Contains(t, w.infoLabel.Text, "PNG, 40×30")
	assert.Equal(t, dir, settings.LastDirectory())

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("nope"), 0o644))
	assert.Error(t, w.setSource(junk))
	assert.Equal(t, src, w.sourcePath, "failed pick must keep the previous source")
}

func TestFinishExport(t *testing.T) {
	w, settings := newTestWindow(t, Options{})
	w.convertButton.Disable()

	w.finishExport(&export.Result{Path: "/out/dir/a.png", Format: encoder.PNG, Bytes: 10}, nil)
	assert.False(t, w.convertButton.Disabled())
	assert.Equal(t, LabelConvert, w.convertButton.Text)
	assert.Equal(t, "/out/dir", settings.LastDirectory())
}

func TestExport_FailureRemovesDialogPlaceholder(t *testing.T) {
	w, _ := newTestWindow(t, Options{Format: encoder.PNG})
	dir := t.TempDir()
	src := writeSample(t, dir)
	require.NoError(t, w.setSource(src))
	require.NoError(t, os.Remove(src))

	// Confirming the save dialog creates or truncates the destination.
	dest := filepath.Join(dir, "keep.png")
	require.NoError(t, os.WriteFile(dest, []byte("existing content"), 0o644))
	require.NoError(t, os.WriteFile(dest, nil, 0o644))

	res, err := w.export(w.request(dest))
	assert.Nil(t, res)
	var decErr *export.DecodeError
	require.True(t, errors.As(err, &decErr), "got %T: %v", err, err)
	assert.Contains(t, err.Error(), fmt.Sprintf(MsgPlaceholderRemoved, dest))
	assert.NoFileExists(t, dest)
}

func TestExport_SuccessKeepsDestination(t *testing.T) {
	w, _ := newTestWindow(t, Options{Format: encoder.PNG})
	dir := t.TempDir()
	require.NoError(t, w.setSource(writeSample(t, dir)))

	dest := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(dest, nil, 0o644))

	res, err := w.export(w.request(dest))
	require.NoError(t, err)
	assert.Equal(t, dest, res.Path)
	assert.FileExists(t, dest)
}

func TestDiscardPlaceholder_KeepsNonEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	cause := errors.New("decode failed")

	full := filepath.Join(dir, "full.png")
	require.NoError(t, os.WriteFile(full, []byte("data"), 0o644))
	assert.Same(t, cause, discardPlaceholder(full, cause))
	assert.FileExists(t, full)

	assert.Same(t, cause, discardPlaceholder(filepath.Join(dir, "missing.png"), cause))
	assert.Same(t, cause, discardPlaceholder(dir, cause))
}

func TestSuggestedName(t *testing.T) {
	assert.Equal(t, "photo.jpg", SuggestedName("/a/b/photo.png", encoder.JPEG))
	assert.Equal(t, "photo.ico", SuggestedName("photo.jpeg", encoder.ICO))
	assert.Equal(t, "archive.tar.png", SuggestedName("archive.tar.gz", encoder.PNG))
}

func TestDestExtensions(t *testing.T) {
	assert.Equal(t, []string{".jpg", ".jpeg"}, DestExtensions(encoder.JPEG))
	assert.Equal(t, []string{".gif"}, DestExtensions(encoder.GIF))
}

func TestSuccessMessage(t *testing.T) {
	msg := SuccessMessage(&export.Result{
		Path:      "/tmp/icon.ico",
		Format:    encoder.ICO,
		Bytes:     2048,
		IconSizes: []int{16, 32},
		Hash:      "0123456789abcdef",
	})
	assert.Contains(t, msg, "/tmp/icon.ico")
	assert.Contains(t, msg, "ICO, 2.0 KB (16x16, 32x32)")
	assert.Contains(t, msg, "xxh64 0123456789abcdef")
	assert.NotContains(t, msg, MsgFlattened)

	msg = SuccessMessage(&export.Result{Path: "/tmp/a.jpg", Format: encoder.JPEG, Flattened: true})
	assert.Contains(t, msg, MsgFlattened)
}
