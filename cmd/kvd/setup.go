package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kvd/internal/config"
)

// cfg is the project configuration loaded before every command.
var cfg = config.Default()

var cleanups []func()

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// setupCommand loads the configuration, then starts tracing and profiling.
func setupCommand(cmd *cobra.Command, _ []string) error {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	loaded, err := config.Discover(explicit, ".")
	if err != nil {
		return err
	}
	cfg = loaded

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, traceCleanup)

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, profCleanup)
	return nil
}

// persistentString returns the flag value when set on the command line,
// otherwise fallback (usually taken from the config file).
func persistentString(cmd *cobra.Command, name, fallback string) (string, error) {
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed(name) {
		return fallback, nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

func persistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Root().PersistentFlags().GetBool(name)
	return err == nil && v
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("max-diagnostics") {
		return cfg.Output.MaxDiagnostics, nil
	}
	n, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// useColor resolves --color (or output.color) for the stream f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := persistentString(cmd, "color", cfg.Output.Color)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// localString is like persistentString for a command's own flags.
func localString(cmd *cobra.Command, name, fallback string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return strings.ToLower(v), nil
}
