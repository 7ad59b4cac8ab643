package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/AnyUserName/imgconv/internal/config"
	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/AnyUserName/imgconv/internal/export"
	"github.com/AnyUserName/imgconv/internal/profile"
)

// Options seeds the form. Zero fields fall back to stored settings.
type Options struct {
	Preset    string
	Format    encoder.Format
	Quality   int
	OpenAfter *bool
	Logf      func(format string, args ...any)
}

// MainWindow is the converter form.
type MainWindow struct {
	window   fyne.Window
	exporter *export.Exporter
	settings *config.Settings
	logf     func(format string, args ...any)

	sourcePath string
	iconSizes  []int
	applying   bool // a preset is being applied; suppress "custom"

	fileLabel     *widget.Label
	infoLabel     *widget.Label
	selectButton  *widget.Button
	presetSelect  *widget.Select
	formatSelect  *widget.Select
	qualitySlider *widget.Slider
	qualityLabel  *widget.Label
	openCheck     *widget.Check
	convertButton *widget.Button
}

// NewMainWindow builds the window and its widgets.
func NewMainWindow(app fyne.App, exporter *export.Exporter, settings *config.Settings, opts Options) *MainWindow {
	w := &MainWindow{
		window:   app.NewWindow(WindowTitle),
		exporter: exporter,
		settings: settings,
		logf:     opts.Logf,
	}
	if w.logf == nil {
		w.logf = func(string, ...any) {}
	}
	w.build()

	w.setFormat(settings.Format())
	w.setQuality(settings.Quality())
	w.openCheck.SetChecked(settings.OpenAfterExport())

	if opts.Preset != "" {
		w.applyPreset(profile.Get(opts.Preset))
	}
	if opts.Format != "" {
		w.setFormat(opts.Format)
	}
	if opts.Quality > 0 {
		w.setQuality(opts.Quality)
	}
	if opts.OpenAfter != nil {
		w.openCheck.SetChecked(*opts.OpenAfter)
	}
	w.refreshQualityLabel()

	w.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	return w
}

// Window returns the underlying fyne window.
func (w *MainWindow) Window() fyne.Window { return w.window }

// ShowAndRun shows the window and runs the app event loop.
func (w *MainWindow) ShowAndRun() { w.window.ShowAndRun() }

func (w *MainWindow) build() {
	w.fileLabel = widget.NewLabel(LabelNoFile)
	w.infoLabel = widget.NewLabel("")
	w.selectButton = widget.NewButton(LabelSelect, w.onSelect)

	w.presetSelect = widget.NewSelect(append(profile.Names(), PresetCustom), func(name string) {
		if w.applying || name == PresetCustom {
			return
		}
		w.applyPreset(profile.Get(name))
	})

	var labels []string
	for _, f := range encoder.NewRegistry().Available() {
		labels = append(labels, f.Label())
	}
	w.formatSelect = widget.NewSelect(labels, func(label string) {
		f, err := encoder.ParseFormat(label)
		if err != nil {
			return
		}
		if f != encoder.ICO {
			w.iconSizes = nil
		}
		w.settings.SetFormat(f)
		w.refreshQualityLabel()
		w.markCustom()
	})

	w.qualitySlider = widget.NewSlider(1, 100)
	w.qualitySlider.Step = 1
	w.qualityLabel = widget.NewLabel("")
	w.qualitySlider.OnChanged = func(v float64) {
		w.settings.SetQuality(int(v))
		w.refreshQualityLabel()
		w.markCustom()
	}

	w.openCheck = widget.NewCheck(LabelOpenAfter, func(v bool) {
		w.settings.SetOpenAfterExport(v)
	})

	w.convertButton = widget.NewButton(LabelConvert, w.onConvert)
	w.convertButton.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem(LabelPreset, w.presetSelect),
		widget.NewFormItem(LabelFormat, w.formatSelect),
		widget.NewFormItem(LabelQuality, container.NewBorder(nil, nil, nil, w.qualityLabel, w.qualitySlider)),
	)

	w.window.SetContent(container.NewVBox(
		container.NewBorder(nil, nil, nil, w.selectButton, w.fileLabel),
		w.infoLabel,
		form,
		w.openCheck,
		w.convertButton,
	))
}

func (w *MainWindow) format() encoder.Format {
	f, err := encoder.ParseFormat(w.formatSelect.Selected)
	if err != nil {
		return config.DefaultFormat
	}
	return f
}

func (w *MainWindow) quality() int { return int(w.qualitySlider.Value) }

func (w *MainWindow) setFormat(f encoder.Format) { w.formatSelect.SetSelected(f.Label()) }

func (w *MainWindow) setQuality(q int) { w.qualitySlider.SetValue(float64(q)) }

func (w *MainWindow) applyPreset(p profile.Profile) {
	w.applying = true
	defer func() { w.applying = false }()

	w.setFormat(p.Format)
	w.setQuality(p.Quality)
	w.iconSizes = p.IconSizes
	if _, ok := profile.Lookup(p.Name); ok {
		w.presetSelect.SetSelected(p.Name)
	} else {
		w.presetSelect.SetSelected(PresetCustom)
	}
	w.logf("preset %s: %s q=%d", p.Name, p.Format, p.Quality)
}

func (w *MainWindow) markCustom() {
	if w.applying || w.presetSelect == nil {
		return
	}
	w.applying = true
	w.presetSelect.SetSelected(PresetCustom)
	w.applying = false
}

func (w *MainWindow) refreshQualityLabel() {
	if w.qualityLabel == nil || w.qualitySlider == nil {
		return
	}
	f := w.format()
	if f == encoder.JPEG {
		w.qualityLabel.SetText(fmt.Sprintf(QualityFormat, w.quality()))
		return
	}
	w.qualityLabel.SetText(fmt.Sprintf(QualityIgnored, w.quality(), f.Label()))
}

// request builds the export request for the current form state.
func (w *MainWindow) request(dest string) export.Request {
	req := export.NewRequest(w.sourcePath, dest, w.format(), w.quality())
	if req.Format == encoder.ICO {
		req.IconSizes = w.iconSizes
	}
	req.OpenResult = w.openCheck.Checked
	return req
}

func (w *MainWindow) onSelect() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if rc == nil {
			return // cancelled
		}
		path := rc.URI().Path()
		rc.Close()
		w.setSource(path)
	}, w.window)
	d.SetFilter(storage.NewExtensionFileFilter(SourceExtensions))
	w.startIn(d)
	d.Show()
}

// setSource probes path and, if it is a readable image, makes it the source.
func (w *MainWindow) setSource(path string) error {
	info, err := export.Probe(path)
	if err != nil {
		dialog.ShowError(err, w.window)
		return err
	}
	w.sourcePath = path
	w.fileLabel.SetText(filepath.Base(path))
	w.infoLabel.SetText(fmt.Sprintf("%s, %d×%d, %s",
		strings.ToUpper(info.Format), info.Width, info.Height, export.HumanSize(info.Size)))
	w.settings.SetLastDirectory(filepath.Dir(path))
	w.logf("selected %s", info)
	return nil
}

func (w *MainWindow) onConvert() {
	if w.sourcePath == "" {
		dialog.ShowInformation(TitleSelectFirst, MsgSelectFirst, w.window)
		return
	}
	format := w.format()

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if wc == nil {
			return // cancelled
		}
		dest := wc.URI().Path()
		wc.Close()
		w.runExport(w.request(dest))
	}, w.window)
	d.SetFileName(SuggestedName(w.sourcePath, format))
	d.SetFilter(storage.NewExtensionFileFilter(DestExtensions(format)))
	w.startIn(d)
	d.Show()
}

// runExport performs the export off the UI goroutine.
func (w *MainWindow) runExport(req export.Request) {
	w.convertButton.Disable()
	w.convertButton.SetText(LabelConverting)

	go func() {
		res, err := w.export(req)
		fyne.Do(func() { w.finishExport(res, err) })
	}()
}

// export runs req. The save dialog has already created or truncated
// req.DestPath, so a failed export removes the empty file it left behind.
func (w *MainWindow) export(req export.Request) (*export.Result, error) {
	res, err := w.exporter.Export(req)
	if err != nil {
		return nil, discardPlaceholder(req.DestPath, err)
	}
	return res, nil
}

// discardPlaceholder removes path if it is an empty regular file and notes the
// removal in the returned error. Anything else at path is left alone.
func discardPlaceholder(path string, cause error) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != 0 {
		return cause
	}
	if err := os.Remove(path); err != nil {
		return cause
	}
	return fmt.Errorf("%w\n\n"+MsgPlaceholderRemoved, cause, path)
}

func (w *MainWindow) finishExport(res *export.Result, err error) {
	w.convertButton.SetText(LabelConvert)
	w.convertButton.Enable()

	if err != nil {
		w.logf("error: %v", err)
		dialog.ShowError(err, w.window)
		return
	}
	w.settings.SetLastDirectory(filepath.Dir(res.Path))
	dialog.ShowInformation(TitleDone, SuccessMessage(res), w.window)
}

func (w *MainWindow) startIn(d *dialog.FileDialog) {
	dir := w.settings.LastDirectory()
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	d.SetLocation(lister)
}

// SuggestedName is the save dialog's default file name: the source's base
// name with the target format's extension.
func SuggestedName(source string, f encoder.Format) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	ext := string(f)
	if enc := encoder.NewRegistry().Get(f); enc != nil {
		ext = enc.Extension()
	}
	return base + "." + ext
}

// DestExtensions lists the extensions the save dialog filters on.
func DestExtensions(f encoder.Format) []string {
	if f == encoder.JPEG {
		return []string{".jpg", ".jpeg"}
	}
	return []string{"." + string(f)}
}

// SuccessMessage is the text of the completion dialog.
func SuccessMessage(res *export.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, MsgSaved, res.Path)
	fmt.Fprintf(&b, "\n%s, %s", res.Format.Label(), export.HumanSize(res.Bytes))
	if len(res.IconSizes) > 0 {
		sizes := make([]string, len(res.IconSizes))
		for i, s := range res.IconSizes {
			sizes[i] = fmt.Sprintf("%dx%d", s, s)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(sizes, ", "))
	}
	if res.Hash != "" {
		fmt.Fprintf(&b, "\nxxh64 %s", res.Hash)
	}
	if res.Flattened {
		b.WriteString("\n" + MsgFlattened)
	}
	return b.String()
}
