package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// progressMode resolves the progress view for a directory run: --ui when
// given, otherwise output.progress from the config file.
func progressMode(cmd *cobra.Command) (uiMode, error) {
	value, err := localString(cmd, "ui", cfg.Output.Progress)
	if err != nil {
		return "", err
	}
	return readUIMode(value)
}

// shouldUseTUI decides whether a directory run shows the progress view.
// The view draws on stderr, so in auto mode it stays off when stderr is not
// a terminal, when output is quiet, or when trace events already go there.
func shouldUseTUI(mode uiMode, quiet, traceOnStderr bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && !traceOnStderr && isTerminal(os.Stderr)
	}
}
