package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kvd/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "kvd",
	Short: "Reader and inspector for kvd data files",
	Long: `kvd reads a small JSON-like notation: objects, lists, strings,
integers, floats and bare identifiers. It can tokenize, parse, check and
query .kvd files.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
	PersistentPostRun: func(*cobra.Command, []string) { runCleanups() },
}

// errReported marks a failure whose diagnostics are already printed.
var errReported = errors.New("diagnostics reported")

// main registers subcommands and persistent flags and executes the root
// command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0 = unlimited)")
	flags.String("config", "", "config file (default: nearest kvd.toml, kvd.yaml or .kvd.yaml)")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	err := rootCmd.Execute()
	// PersistentPostRun is skipped when a command fails
	runCleanups()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
