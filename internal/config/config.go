// Package config provides YAML configuration and per-user paths for the
// spreadsheet viewer
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/pane"
	"github.com/young1lin/sheetview/internal/render"
)

// SchemaVersion is the config schema this build writes
const SchemaVersion = "1.0.0"

// SupportedVersions is the range of schema versions this build reads
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// ErrUnsupportedVersion is returned for a config whose schema version is
// outside SupportedVersions
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Config represents the viewer configuration
type Config struct {
	Version string       `yaml:"version"`
	Grid    GridConfig   `yaml:"grid"`
	Scroll  ScrollConfig `yaml:"scroll"`
	Data    DataConfig   `yaml:"data"`
	Debug   DebugConfig  `yaml:"debug"`

	// file the config was read from, empty for defaults
	Source string `yaml:"-"`
}

// GridConfig controls the header split and cell geometry
type GridConfig struct {
	HeaderRows    int     `yaml:"headerRows"`
	HeaderColumns int     `yaml:"headerColumns"`
	ItemWidth     float64 `yaml:"itemWidth"`
	ItemHeight    float64 `yaml:"itemHeight"`
	Spacing       float64 `yaml:"spacing"`
	Align         string  `yaml:"align"` // "left", "center" or "right"
}

// ScrollConfig mirrors the scroll surface attributes of every pane
type ScrollConfig struct {
	ShowsHorizontalIndicator bool            `yaml:"showsHorizontalIndicator"`
	ShowsVerticalIndicator   bool            `yaml:"showsVerticalIndicator"`
	Bounces                  bool            `yaml:"bounces"`
	Insets                   geometry.Insets `yaml:"insets"`
}

// DataConfig locates the sheet database
type DataConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// DebugConfig controls the debug log
type DebugConfig struct {
	LogFile string `yaml:"logFile"`
}

// Load loads configuration from file with priority:
// 1. Project-level: .sheetview/config.yaml
// 2. Global: ~/.sheetview/config.yaml
// 3. Default: built-in defaults
func Load(projectDir string) (*Config, error) {
	return LoadWithPlatform(projectDir, DefaultPlatform)
}

// LoadWithPlatform allows injecting a custom platform provider for testing.
// An empty projectDir means the working directory.
func LoadWithPlatform(projectDir string, platform PlatformProvider) (*Config, error) {
	if projectDir == "" {
		if wd, err := platform.Getwd(); err == nil {
			projectDir = wd
		}
	}

	candidates := []string{}
	if projectDir != "" {
		candidates = append(candidates, ProjectConfigPath(projectDir))
	}
	if global := GlobalConfigPath(platform); global != "" {
		candidates = append(candidates, global)
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return LoadFile(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Source = path

	if err := checkVersion(cfg.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func checkVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s not in %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// normalize replaces out-of-range values with their defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Version == "" {
		c.Version = SchemaVersion
	}
	if c.Grid.HeaderRows < 0 {
		c.Grid.HeaderRows = d.Grid.HeaderRows
	}
	if c.Grid.HeaderColumns < 0 {
		c.Grid.HeaderColumns = d.Grid.HeaderColumns
	}
	if c.Grid.ItemWidth <= 0 {
		c.Grid.ItemWidth = d.Grid.ItemWidth
	}
	if c.Grid.ItemHeight <= 0 {
		c.Grid.ItemHeight = d.Grid.ItemHeight
	}
	if c.Grid.Spacing < 0 {
		c.Grid.Spacing = d.Grid.Spacing
	}
	if _, err := render.ParseAlign(c.Grid.Align); err != nil {
		c.Grid.Align = d.Grid.Align
	}
	in := &c.Scroll.Insets
	in.Top, in.Left, in.Bottom, in.Right = max(in.Top, 0), max(in.Left, 0), max(in.Bottom, 0), max(in.Right, 0)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Grid: GridConfig{
			HeaderRows:    1,
			HeaderColumns: 1,
			ItemWidth:     10,
			ItemHeight:    1,
			Spacing:       1,
			Align:         "left",
		},
		Scroll: ScrollConfig{
			ShowsHorizontalIndicator: true,
			ShowsVerticalIndicator:   true,
			Bounces:                  true,
		},
		Data: DataConfig{
			Watch: true,
		},
	}
}

// ItemSize returns the default cell size
func (c *Config) ItemSize() geometry.Size {
	return geometry.Size{Width: c.Grid.ItemWidth, Height: c.Grid.ItemHeight}
}

// ScrollIndicators returns the scroll attributes for every pane
func (c *Config) ScrollIndicators() pane.ScrollIndicators {
	return pane.ScrollIndicators{
		Insets:          c.Scroll.Insets,
		ShowsHorizontal: c.Scroll.ShowsHorizontalIndicator,
		ShowsVertical:   c.Scroll.ShowsVerticalIndicator,
		Bounces:         c.Scroll.Bounces,
	}
}

// Align returns the cell text alignment
func (c *Config) Align() render.Align {
	a, _ := render.ParseAlign(c.Grid.Align)
	return a
}

// DBPath returns data.path, or the per-user default database
func (c *Config) DBPath() string {
	if c.Data.Path != "" {
		return c.Data.Path
	}
	return DefaultDBPath()
}
