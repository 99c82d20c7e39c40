// Package config provides configuration management for skillcatalog.
// It supports YAML and TOML configuration files, environment variables, and
// defaults that reproduce the fixed dataset layout.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/skillcatalog/internal/export"
	"github.com/klauern/skillcatalog/internal/ui"
	"github.com/klauern/skillcatalog/internal/util"
)

// Config represents the complete skillcatalog configuration.
type Config struct {
	// Paths locates the two sources and the export target
	Paths PathsConfig `yaml:"paths" toml:"paths"`

	// Output configures the export format and console preferences
	Output OutputConfig `yaml:"output" toml:"output"`
}

// PathsConfig holds input and output locations.
// Relative paths are resolved against BaseDir, which defaults to the
// directory of the skillcatalog executable.
type PathsConfig struct {
	// BaseDir anchors relative paths. Empty means the executable's directory.
	BaseDir string `yaml:"base_dir,omitempty" toml:"base_dir,omitempty"`
	// Index is the canonical skills index
	Index string `yaml:"index" toml:"index"`
	// Catalog is the markdown catalog with tags and triggers
	Catalog string `yaml:"catalog" toml:"catalog"`
	// Output is the export file, overwritten on every run
	Output string `yaml:"output" toml:"output"`
}

// OutputConfig holds export and display preferences.
type OutputConfig struct {
	// Format is the export format (csv, json, yaml, markdown)
	Format string `yaml:"format" toml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
	// Verbose enables info level logging
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// Default paths, relative to the executable's directory.
const (
	DefaultIndexPath   = "../skills_index.json"
	DefaultCatalogPath = "../CATALOG.md"
	DefaultOutputPath  = "skills.csv"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Index:   DefaultIndexPath,
			Catalog: DefaultCatalogPath,
			Output:  DefaultOutputPath,
		},
		Output: OutputConfig{
			Format:  string(export.FormatCSV),
			Color:   ui.ColorAuto,
			Verbose: false,
		},
	}
}

// configFileName is the name of the default config file.
const configFileName = "config.yaml"

// FilePath returns the path to the default config file.
func FilePath() string {
	return filepath.Join(util.SkillcatalogConfigPath(), configFileName)
}

// Load loads the configuration from the default file, merging with defaults.
// If the config file doesn't exist, returns defaults with environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFromPath(FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = Default()
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path. Files ending in
// .toml are decoded as TOML, everything else as YAML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// SaveToPath writes the configuration to a specific path, as TOML when the
// path ends in .toml and YAML otherwise.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := c.Marshal(isTOML(path))
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes the configuration as TOML or YAML.
func (c *Config) Marshal(asTOML bool) ([]byte, error) {
	if !asTOML {
		return yaml.Marshal(c)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SKILLCATALOG_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("SKILLCATALOG_BASE_DIR"); v != "" {
		c.Paths.BaseDir = v
	}
	if v := os.Getenv("SKILLCATALOG_INDEX_PATH"); v != "" {
		c.Paths.Index = v
	}
	if v := os.Getenv("SKILLCATALOG_CATALOG_PATH"); v != "" {
		c.Paths.Catalog = v
	}
	if v := os.Getenv("SKILLCATALOG_OUTPUT_PATH"); v != "" {
		c.Paths.Output = v
	}

	if v := os.Getenv("SKILLCATALOG_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("SKILLCATALOG_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("SKILLCATALOG_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.Index) == "" {
		return errors.New("paths.index must not be empty")
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		return errors.New("paths.output must not be empty")
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	switch strings.ToLower(c.Output.Color) {
	case "", ui.ColorAuto, ui.ColorAlways, ui.ColorNever:
	default:
		return fmt.Errorf("output.color: invalid value %q (valid: auto, always, never)", c.Output.Color)
	}
	return nil
}

// GetFormat returns the configured export format, falling back to CSV.
func (c *Config) GetFormat() export.Format {
	if f, err := export.ParseFormat(c.Output.Format); err == nil {
		return f
	}
	return export.FormatCSV
}

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string {
	if c.Paths.BaseDir != "" {
		return util.ExpandPath(c.Paths.BaseDir, util.ExecutableDir())
	}
	return util.ExecutableDir()
}

// IndexPath returns the resolved index path.
func (c *Config) IndexPath() string {
	return util.ExpandPath(c.Paths.Index, c.BaseDir())
}

// CatalogPath returns the resolved catalog path.
func (c *Config) CatalogPath() string {
	return util.ExpandPath(c.Paths.Catalog, c.BaseDir())
}

// OutputPath returns the resolved export path.
func (c *Config) OutputPath() string {
	return util.ExpandPath(c.Paths.Output, c.BaseDir())
}
