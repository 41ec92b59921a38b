// Package config loads the optional kvd.toml / kvd.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are searched in this order in every directory.
var FileNames = []string{"kvd.toml", "kvd.yaml", ".kvd.yaml"}

// Config is the project configuration. Zero fields mean "not set" and are
// filled by ApplyDefaults.
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	Parse  ParseConfig  `toml:"parse" yaml:"parse"`
	Trace  TraceConfig  `toml:"trace" yaml:"trace"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type OutputConfig struct {
	Color          string `toml:"color" yaml:"color"`   // auto|on|off
	Format         string `toml:"format" yaml:"format"` // pretty|json
	MaxDiagnostics int    `toml:"max_diagnostics" yaml:"max_diagnostics"`
	// Progress selects the directory progress view: auto|on|off.
	Progress string `toml:"progress" yaml:"progress"`
}

type ParseConfig struct {
	Jobs       int      `toml:"jobs" yaml:"jobs"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Cache      bool     `toml:"cache" yaml:"cache"`
}

type TraceConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Output string `toml:"output" yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults sets default values for missing configuration.
func (c *Config) ApplyDefaults() {
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Format == "" {
		c.Output.Format = "pretty"
	}
	if c.Output.Progress == "" {
		c.Output.Progress = "auto"
	}
	if c.Output.MaxDiagnostics == 0 {
		c.Output.MaxDiagnostics = 100
	}
	if len(c.Parse.Extensions) == 0 {
		c.Parse.Extensions = []string{".kvd"}
	}
	if c.Trace.Level == "" {
		c.Trace.Level = "off"
	}
}

// Validate rejects values the CLI cannot honor.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Output.Color) {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("output.color: invalid value %q (expected auto|on|off)", c.Output.Color))
	}
	switch strings.ToLower(c.Output.Format) {
	case "pretty", "json":
	default:
		errs = append(errs, fmt.Errorf("output.format: invalid value %q (expected pretty|json)", c.Output.Format))
	}
	switch strings.ToLower(c.Output.Progress) {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("output.progress: invalid value %q (expected auto|on|off)", c.Output.Progress))
	}
	if c.Output.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("output.max_diagnostics: must not be negative"))
	}
	if c.Parse.Jobs < 0 {
		errs = append(errs, fmt.Errorf("parse.jobs: must not be negative"))
	}
	for _, ext := range c.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("parse.extensions: %q must start with a dot", ext))
		}
	}
	if err := errors.Join(errs...); err != nil {
		if c.Path != "" {
			return fmt.Errorf("%s: %w", c.Path, err)
		}
		return err
	}
	return nil
}

// Find walks up from startDir looking for one of FileNames.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path by extension (.toml, .yaml, .yml), applies defaults and validates.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{Path: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format", path)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads the explicit path when given, otherwise the nearest config
// found from startDir, otherwise the defaults.
func Discover(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
