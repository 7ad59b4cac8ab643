// Package ui is the Fyne window of the converter. The form state becomes an
// export.Request and the outcome is reported in a dialog. Exports run off the
// UI goroutine.
package ui
