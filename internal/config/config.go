// Package config loads slatebar configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (SLATEBAR_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .slatebar.yaml in current directory
//  2. ~/.config/slatebar/config.yaml
//
// Per-widget settings are not configured here; they resolve through the
// option registry against tmux user options.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all slatebar configuration.
type Config struct {
	// Appearance
	Theme       string `yaml:"theme"`       // embedded theme name
	ThemeFile   string `yaml:"theme_file"`  // custom palette path, overrides Theme
	Transparent bool   `yaml:"transparent"` // draw gaps and edges on the default background
	Separator   string `yaml:"separator"`   // "normal" (powerline arrow) or "rounded" (pill)
	Spacing     string `yaml:"spacing"`     // "none", "both", "widgets-only"

	// Widgets is the status-line configuration, e.g.
	// "datetime:secondary:active:T:static; loadavg:warning:warning-subtle:L:conditional"
	Widgets string `yaml:"widgets"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `yaml:"cache_dir"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// ConfigFile is the path of the loaded config file (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Theme:     "dark",
		Separator: "normal",
		Spacing:   "widgets-only",
		Widgets:   "datetime:secondary:active::static",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)
	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".slatebar.yaml"); err == nil {
		return ".slatebar.yaml", data, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "slatebar", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}
	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.ThemeFile != "" {
		cfg.ThemeFile = file.ThemeFile
	}
	if file.Transparent {
		cfg.Transparent = file.Transparent
	}
	if file.Separator != "" {
		cfg.Separator = file.Separator
	}
	if file.Spacing != "" {
		cfg.Spacing = file.Spacing
	}
	if file.Widgets != "" {
		cfg.Widgets = file.Widgets
	}
	if file.CacheDir != "" {
		cfg.CacheDir = file.CacheDir
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("SLATEBAR_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("SLATEBAR_THEME_FILE"); v != "" {
		cfg.ThemeFile = v
	}
	if v := os.Getenv("SLATEBAR_TRANSPARENT"); v == "true" || v == "1" {
		cfg.Transparent = true
	}
	if v := os.Getenv("SLATEBAR_SEPARATOR"); v != "" {
		cfg.Separator = v
	}
	if v := os.Getenv("SLATEBAR_SPACING"); v != "" {
		cfg.Spacing = v
	}
	if v := os.Getenv("SLATEBAR_WIDGETS"); v != "" {
		cfg.Widgets = v
	}
	if v := os.Getenv("SLATEBAR_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
