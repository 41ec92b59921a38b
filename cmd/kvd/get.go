package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kvd/internal/ast"
	"kvd/internal/diagfmt"
	"kvd/internal/driver"
)

var getCmd = &cobra.Command{
	Use:   "get [flags] <file.kvd|-> <path>",
	Short: "Print the value at a dotted path",
	Long: `Get parses a document and prints the subtree at path. Segments are
separated by dots: object keys select members, decimal segments index lists.
An empty path selects the root.

  kvd get config.kvd servers.0.host`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	getCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runGet(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Root == nil {
		return errReported
	}

	node, err := ast.Path(result.Root, splitPath(args[1])...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatASTJSON(out, node)
	}
	return diagfmt.FormatASTTree(out, node, result.FileSet)
}

func splitPath(path string) []string {
	path = strings.TrimSpace(path)
	if path == "" || path == "." {
		return nil
	}
	return strings.Split(path, ".")
}
