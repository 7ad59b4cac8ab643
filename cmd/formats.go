package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv/internal/encoder"
	"github.com/AnyUserName/imgconv/internal/profile"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats and presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		printFormats(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func printFormats(w io.Writer) {
	reg := encoder.NewRegistry()
	logVerbose("%s", reg)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Formats:")
	for _, f := range reg.Available() {
		enc := reg.Get(f)
		quality := "ignored"
		if f == encoder.JPEG {
			quality = "1-100"
		}
		kind := "lossless"
		if enc.Lossy() {
			kind = "lossy"
		}
		preset := "-"
		if p, ok := profile.ForFormat(f); ok {
			preset = p.Name
		}
		fmt.Fprintf(w, "    %-5s .%-4s  %-8s  quality %-8s  e.g. --preset %s\n", f.Label(), enc.Extension(), kind, quality, preset)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Presets:")
	for _, name := range profile.Names() {
		p := profile.Get(name)
		detail := fmt.Sprintf("q=%d", p.Quality)
		if p.Format == encoder.ICO {
			sizes := make([]string, len(p.IconSizes))
			for i, s := range p.IconSizes {
				sizes[i] = fmt.Sprint(s)
			}
			detail = "sizes=" + strings.Join(sizes, ",")
		}
		fmt.Fprintf(w, "    %-9s %-5s %-14s %s\n", name, p.Format.Label(), detail, p.Description)
	}
	fmt.Fprintln(w)
}
