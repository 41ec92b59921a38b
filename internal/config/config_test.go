package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kvd/internal/config"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.Output.Color != "auto" || cfg.Output.Format != "pretty" || cfg.Output.MaxDiagnostics != 100 || cfg.Output.Progress != "auto" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
	if len(cfg.Parse.Extensions) != 1 || cfg.Parse.Extensions[0] != ".kvd" {
		t.Errorf("unexpected extensions: %v", cfg.Parse.Extensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvd.toml")
	write(t, path, `
[output]
color = "off"
max_diagnostics = 5

[parse]
jobs = 4
extensions = [".kvd", ".conf"]
cache = true

[trace]
level = "phase"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Color != "off" || cfg.Output.MaxDiagnostics != 5 || cfg.Output.Format != "pretty" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Parse.Jobs != 4 || !cfg.Parse.Cache || len(cfg.Parse.Extensions) != 2 {
		t.Errorf("parse = %+v", cfg.Parse)
	}
	if cfg.Trace.Level != "phase" || cfg.Path != path {
		t.Errorf("trace = %+v, path = %q", cfg.Trace, cfg.Path)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".kvd.yaml")
	write(t, path, "output:\n  format: json\n  progress: \"off\"\nparse:\n  jobs: 2\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Progress != "off" || cfg.Parse.Jobs != 2 || cfg.Output.Color != "auto" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "kvd.toml")
	write(t, bad, "[output]\ncolor = \"sometimes\"\nprogress = \"maybe\"\n[parse]\nextensions = [\"kvd\"]\n")
	_, err := config.Load(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"output.color", "output.progress", "parse.extensions", bad} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	broken := filepath.Join(dir, "broken.yaml")
	write(t, broken, "output: [")
	if _, err := config.Load(broken); err == nil || !strings.Contains(err.Error(), "YAML") {
		t.Errorf("broken yaml: %v", err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "kvd.yaml"), "parse:\n  jobs: 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Discover("", nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.Jobs != 3 {
		t.Errorf("jobs = %d, want 3 from the parent config", cfg.Parse.Jobs)
	}

	// kvd.toml takes precedence within one directory
	write(t, filepath.Join(nested, "kvd.toml"), "[parse]\njobs = 7\n")
	cfg, err = config.Discover("", nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.Jobs != 7 {
		t.Errorf("jobs = %d, want 7 from the nearest config", cfg.Parse.Jobs)
	}

	explicit := filepath.Join(root, "custom.toml")
	write(t, explicit, "[output]\nmax_diagnostics = 1\n")
	cfg, err = config.Discover(explicit, nested)
	if err != nil || cfg.Output.MaxDiagnostics != 1 {
		t.Errorf("explicit config: %+v, %v", cfg, err)
	}
}
