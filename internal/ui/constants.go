package ui

// Window
const (
	WindowTitle          = "Image Converter & Compressor"
	WindowWidth  float32 = 600
	WindowHeight float32 = 400
)

// Labels
const (
	LabelNoFile      = "No image selected"
	LabelSelect      = "Select image"
	LabelFormat      = "Output format:"
	LabelPreset      = "Preset:"
	LabelQuality     = "Quality (1-100):"
	LabelOpenAfter   = "Open result when done"
	LabelConvert     = "Convert and compress"
	LabelConverting  = "Converting..."
	QualityFormat    = "%d"
	QualityIgnored   = "%d (not used by %s)"
	PresetCustom     = "custom"
	TitleDone        = "Done"
	TitleSelectFirst = "No image"
	MsgSelectFirst   = "Select an image to convert first."
	MsgSaved         = "Image converted and saved to %s"
	MsgFlattened     = "Transparent areas were filled with white."

	MsgPlaceholderRemoved = "The empty file the save dialog created at %s was removed. " +
		"A file that already had this name was replaced when the overwrite was confirmed."
)

// SourceExtensions are offered by the open dialog.
var SourceExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".ico",
}
