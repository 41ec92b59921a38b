package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kvd/internal/diag"
	"kvd/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.kvd|directory|->",
	Short: "Parse kvd files and report diagnostics only",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "diagnostics format (pretty|json, default from config)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0 = auto)")
	checkCmd.Flags().String("ui", "", "progress view for directories (auto|on|off, default from config)")
	checkCmd.Flags().Bool("cache", false, "reuse parsed trees from the on-disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := localString(cmd, "format", cfg.Output.Format)
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	target := args[0]
	var (
		bag     *diag.Bag
		result  *driver.DirResult
		files   int
		failed  int
		quiet   = persistentBool(cmd, "quiet")
		timings = persistentBool(cmd, "timings")
	)
	if isDir(target) {
		result, err = parseDir(cmd, target, "check")
		if err != nil {
			return err
		}
		bag = mergeBags(result)
		files, failed = len(result.Files), result.Failed()
		printTimings(cmd.ErrOrStderr(), timings, result.Timer)
	} else {
		opts, err := parseOptions(cmd)
		if err != nil {
			return err
		}
		single, err := driver.Parse(cmd.Context(), target, opts)
		if err != nil {
			return err
		}
		result = &driver.DirResult{FileSet: single.FileSet, Files: []*driver.ParseResult{single}}
		bag = single.Bag
		files = 1
		if single.Root == nil {
			failed = 1
		}
		printTimings(cmd.ErrOrStderr(), timings, single.Timer)
	}

	out := cmd.OutOrStdout()
	if format == "json" || bag.Len() > 0 {
		if err := writeDiagnostics(cmd, out, format, bag, result.FileSet); err != nil {
			return err
		}
	}
	if !quiet && format == "pretty" {
		fmt.Fprintf(out, "checked %d file(s): %d ok, %d failed\n", files, files-failed, failed)
	}
	if failed > 0 || bag.HasErrors() {
		return errReported
	}
	return nil
}
