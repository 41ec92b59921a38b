package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"kvd/internal/driver"
	"kvd/internal/version"
)

// buildInfo is what `kvd version` reports. Commit and date come from
// -ldflags when set, else from the VCS stamp the go tool embeds.
type buildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	CacheDir  string `json:"cache_dir,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show kvd build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit, build date, Go version and cache directory")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := localString(cmd, "format", "pretty")
	if err != nil {
		return err
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}

	info := collectBuildInfo(full)
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		renderBuildInfo(out, info, color)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func collectBuildInfo(full bool) buildInfo {
	info := buildInfo{Version: strings.TrimSpace(version.Version)}
	if info.Version == "" {
		info.Version = "dev"
	}
	if !full {
		return info
	}
	info.GitCommit = strings.TrimSpace(version.GitCommit)
	info.BuildDate = strings.TrimSpace(version.BuildDate)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "":
				info.BuildDate = s.Value
			}
		}
	}
	info.GitCommit = valueOrUnknown(info.GitCommit)
	info.BuildDate = valueOrUnknown(info.BuildDate)
	info.GoVersion = runtime.Version()
	if dir, err := driver.DiskCacheDir("kvd"); err == nil {
		info.CacheDir = dir
	} else {
		info.CacheDir = "unavailable"
	}
	return info
}

func renderBuildInfo(out io.Writer, info buildInfo, color bool) {
	fmt.Fprintf(out, "kvd %s\n", version.Colored(info.Version, color))
	if info.GoVersion == "" {
		return
	}
	fmt.Fprintf(out, "commit: %s\n", info.GitCommit)
	fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
	fmt.Fprintf(out, "go:     %s\n", info.GoVersion)
	fmt.Fprintf(out, "cache:  %s\n", info.CacheDir)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
