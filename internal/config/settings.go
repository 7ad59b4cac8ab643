package config

import (
	"fyne.io/fyne/v2"

	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/AnyUserName/imgconv/internal/export"
)

// Settings keys for Fyne preferences
const (
	KeyLastFormat      = "last_format"
	KeyLastQuality     = "last_quality"
	KeyOpenAfterExport = "open_after_export"
	KeyLastDirectory   = "last_directory"
)

// Default values
const (
	DefaultFormat          = encoder.JPEG
	DefaultQuality         = export.DefaultQuality
	DefaultOpenAfterExport = true
)

// Settings persists the form state between runs.
type Settings struct {
	prefs fyne.Preferences
}

// NewSettings creates a settings manager backed by the app's preferences.
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// Format returns the last used output format.
func (s *Settings) Format() encoder.Format {
	f, err := encoder.ParseFormat(s.prefs.StringWithFallback(KeyLastFormat, string(DefaultFormat)))
	if err != nil {
		return DefaultFormat
	}
	return f
}

// SetFormat stores the output format.
func (s *Settings) SetFormat(f encoder.Format) {
	s.prefs.SetString(KeyLastFormat, string(f))
}

// Quality returns the last used quality, clamped to 1..100.
func (s *Settings) Quality() int {
	return clampQuality(s.prefs.IntWithFallback(KeyLastQuality, DefaultQuality))
}

// SetQuality stores the quality, clamped to 1..100.
func (s *Settings) SetQuality(q int) {
	s.prefs.SetInt(KeyLastQuality, clampQuality(q))
}

// OpenAfterExport reports whether results are opened in the default viewer.
func (s *Settings) OpenAfterExport() bool {
	return s.prefs.BoolWithFallback(KeyOpenAfterExport, DefaultOpenAfterExport)
}

// SetOpenAfterExport stores the open-after-export choice.
func (s *Settings) SetOpenAfterExport(v bool) {
	s.prefs.SetBool(KeyOpenAfterExport, v)
}

// LastDirectory returns the directory of the last picked or saved file, or "".
func (s *Settings) LastDirectory() string {
	return s.prefs.String(KeyLastDirectory)
}

// SetLastDirectory stores the directory dialogs should start in.
func (s *Settings) SetLastDirectory(dir string) {
	s.prefs.SetString(KeyLastDirectory, dir)
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
