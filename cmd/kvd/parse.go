package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kvd/internal/ast"
	"kvd/internal/diag"
	"kvd/internal/diagfmt"
	"kvd/internal/driver"
	"kvd/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.kvd|directory|->",
	Short: "Parse kvd files and print their syntax trees",
	Long: `Parse reads a kvd file, or every matching file under a directory, and
prints the syntax tree. Diagnostics go to stderr; the exit status is 1 when
any file fails to parse.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0 = auto)")
	parseCmd.Flags().String("ui", "", "progress view for directories (auto|on|off, default from config)")
	parseCmd.Flags().Bool("cache", false, "reuse parsed trees from the on-disk cache")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	write := func(w io.Writer, root ast.Node, fs *source.FileSet) error {
		if format == "json" {
			return diagfmt.FormatASTJSON(w, root)
		}
		return diagfmt.FormatASTTree(w, root, fs)
	}

	target := args[0]
	if isDir(target) {
		return runParseDir(cmd, target, write)
	}

	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Parse(cmd.Context(), target, opts)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), persistentBool(cmd, "timings"), result.Timer)
	if result.Root == nil {
		return errReported
	}
	return write(cmd.OutOrStdout(), result.Root, result.FileSet)
}

func runParseDir(cmd *cobra.Command, dir string, write func(io.Writer, ast.Node, *source.FileSet) error) error {
	result, err := parseDir(cmd, dir, "parse")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	quiet := persistentBool(cmd, "quiet")
	for i, file := range result.Files {
		if err := reportDiagnostics(cmd, file.Bag, result.FileSet); err != nil {
			return err
		}
		if file.Root == nil {
			continue
		}
		if !quiet {
			fmt.Fprintf(out, "== %s ==\n", result.Paths[i])
		}
		if err := write(out, file.Root, result.FileSet); err != nil {
			return err
		}
	}
	printTimings(cmd.ErrOrStderr(), persistentBool(cmd, "timings"), result.Timer)
	if result.Failed() > 0 {
		return errReported
	}
	return nil
}

// parseOptions builds driver options from flags and config.
func parseOptions(cmd *cobra.Command) (driver.ParseOptions, error) {
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return driver.ParseOptions{}, err
	}
	opts := driver.ParseOptions{MaxDiagnostics: maxDiag}

	useCache := cfg.Parse.Cache
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		useCache, _ = cmd.Flags().GetBool("cache")
	}
	if useCache {
		cache, err := driver.OpenDiskCache("kvd")
		if err != nil {
			return driver.ParseOptions{}, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// parseDir runs a directory parse, with the progress view when enabled.
func parseDir(cmd *cobra.Command, dir, title string) (*driver.DirResult, error) {
	parseOpts, err := parseOptions(cmd)
	if err != nil {
		return nil, err
	}
	opts := driver.DirOptions{
		ParseOptions: parseOpts,
		Jobs:         cfg.Parse.Jobs,
		Extensions:   cfg.Parse.Extensions,
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}

	mode, err := progressMode(cmd)
	if err != nil {
		return nil, err
	}
	if !shouldUseTUI(mode, persistentBool(cmd, "quiet"), traceOnStderr) {
		return driver.ParseDir(cmd.Context(), dir, opts)
	}

	files, err := driver.ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return runParseDirWithUI(contextOf(cmd), title, dir, files, opts)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isDir(path string) bool {
	if path == driver.StdinArg {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// mergeBags collects per-file diagnostics of a directory run into one bag.
func mergeBags(result *driver.DirResult) *diag.Bag {
	all := diag.NewBag(0)
	for _, f := range result.Files {
		all.Merge(f.Bag)
	}
	return all
}
