package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"kvd/internal/diagfmt"
	"kvd/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.kvd|directory|->",
	Short: "Print the tokens of kvd files",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0 = auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	if isDir(args[0]) {
		return runTokenizeDir(cmd, args[0], format, maxDiag)
	}

	result, err := driver.Tokenize(args[0], maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}

func runTokenizeDir(cmd *cobra.Command, dir, format string, maxDiag int) error {
	opts := driver.DirOptions{
		ParseOptions: driver.ParseOptions{MaxDiagnostics: maxDiag},
		Jobs:         cfg.Parse.Jobs,
		Extensions:   cfg.Parse.Extensions,
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	fileSet, results, err := driver.TokenizeDir(cmd.Context(), dir, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	byPath := make(map[string][]diagfmt.TokenOutput, len(results))
	for _, r := range results {
		if err := reportDiagnostics(cmd, r.Bag, fileSet); err != nil {
			return err
		}
		if r.Tokens == nil {
			continue
		}
		if format == "json" {
			byPath[r.Path] = diagfmt.BuildTokensOutput(r.Tokens)
			continue
		}
		fmt.Fprintf(out, "== %s ==\n", r.Path)
		if err := diagfmt.FormatTokensPretty(out, r.Tokens, fileSet); err != nil {
			return err
		}
	}
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(byPath)
	}
	return nil
}
