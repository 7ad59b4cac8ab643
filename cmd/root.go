package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv/internal/config"
	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/AnyUserName/imgconv/internal/export"
	"github.com/AnyUserName/imgconv/internal/platform"
	"github.com/AnyUserName/imgconv/internal/profile"
	"github.com/AnyUserName/imgconv/internal/ui"
)

// AppID identifies the app to fyne's preference store.
const AppID = "com.anyusername.imgconv"

var (
	version = "0.1.0"
	verbose bool

	rootPreset  string
	rootFormat  string
	rootQuality int
	rootOpen    bool
)

var rootCmd = &cobra.Command{
	Use:   "imgconv",
	Short: "Convert and compress a picture to JPEG, PNG, GIF or ICO",
	Long: `imgconv opens a small window: pick an image, choose an output format
and a quality, and save a converted copy. The result can be opened in the
system's default viewer when done.

Flags only seed the form; every export is started from the window.`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runWindow,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&rootPreset, "preset", "p", "", "start from a preset (see: imgconv formats)")
	rootCmd.Flags().StringVarP(&rootFormat, "format", "f", "", "initial output format: jpeg, png, gif or ico")
	rootCmd.Flags().IntVarP(&rootQuality, "quality", "q", 0, "initial quality 1-100 (0 = last used)")
	rootCmd.Flags().BoolVar(&rootOpen, "open", config.DefaultOpenAfterExport, "open the result in the default viewer")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgconv] "+format+"\n", args...)
	}
}

// windowOptions validates the seeding flags.
func windowOptions(cmd *cobra.Command) (ui.Options, error) {
	opts := ui.Options{Preset: rootPreset, Logf: logVerbose}

	if rootPreset != "" {
		if _, ok := profile.Lookup(rootPreset); !ok {
			return opts, fmt.Errorf("unknown preset %q (available: %s)",
				rootPreset, strings.Join(profile.Names(), ", "))
		}
	}
	if rootFormat != "" {
		f, err := encoder.ParseFormat(rootFormat)
		if err != nil {
			return opts, fmt.Errorf("--format: %w", err)
		}
		opts.Format = f
	}
	if rootQuality < 0 || rootQuality > 100 {
		return opts, fmt.Errorf("--quality %d outside 1-100", rootQuality)
	}
	opts.Quality = rootQuality
	if cmd.Flags().Changed("open") {
		v := rootOpen
		opts.OpenAfter = &v
	}
	return opts, nil
}

func runWindow(cmd *cobra.Command, _ []string) error {
	opts, err := windowOptions(cmd)
	if err != nil {
		return err
	}

	a := app.NewWithID(AppID)
	settings := config.NewSettings(a)
	exp := export.New(export.Config{
		Opener:  platform.NewSystemOpener(),
		Verbose: verbose,
	})

	logVerbose("preset=%q format=%q quality=%d", opts.Preset, opts.Format, opts.Quality)
	w := ui.NewMainWindow(a, exp, settings, opts)
	w.ShowAndRun()
	return nil
}
