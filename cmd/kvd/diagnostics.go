package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"kvd/internal/diag"
	"kvd/internal/diagfmt"
	"kvd/internal/source"
)

// reportDiagnostics prints bag to stderr in pretty form. Nothing is printed
// for an empty bag.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return nil
}

// writeDiagnostics prints bag to out in the requested format (pretty|json).
func writeDiagnostics(cmd *cobra.Command, out io.Writer, format string, bag *diag.Bag, fs *source.FileSet) error {
	bag.Sort()
	if format == "json" {
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	}
	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return nil
}
