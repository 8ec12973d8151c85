package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/slatebar/slatebar/internal/config"
	"github.com/slatebar/slatebar/internal/theme"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags.
	flagTheme       string
	flagThemeFile   string
	flagSeparator   string
	flagSpacing     string
	flagTransparent bool
	flagWidgets     string
	flagCacheDir    string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "slatebar",
	Short: "Powerline status-line compositor for tmux",
	Long: `slatebar renders a tmux status line from a widget configuration.

Each render is a single short-lived invocation: tmux calls slatebar on
every status refresh, widgets produce their text, severity thresholds
pick the colors, and the compositor emits one string of tmux style
directives. Per-widget settings are read from tmux user options
(@slatebar-<widget>-<option>).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "embedded theme name (default: dark)")
	rootCmd.PersistentFlags().StringVar(&flagThemeFile, "theme-file", "", "custom palette YAML, overrides --theme")
	rootCmd.PersistentFlags().StringVar(&flagSeparator, "separator", "", "separator style: normal, rounded")
	rootCmd.PersistentFlags().StringVar(&flagSpacing, "spacing", "", "gap mode: none, widgets-only, both")
	rootCmd.PersistentFlags().BoolVar(&flagTransparent, "transparent", false, "draw gaps and edges on the terminal default background")
	rootCmd.PersistentFlags().StringVar(&flagWidgets, "widgets", "", "widget configuration line (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "cache directory (default: XDG cache dir)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log widget failures to stderr")
}

// loadConfig loads file+env configuration with command-line flags layered
// on top. Flags beat everything.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	if flagThemeFile != "" {
		cfg.ThemeFile = flagThemeFile
	}
	if flagSeparator != "" {
		cfg.Separator = flagSeparator
	}
	if flagSpacing != "" {
		cfg.Spacing = flagSpacing
	}
	if flagTransparent {
		cfg.Transparent = true
	}
	if flagWidgets != "" {
		cfg.Widgets = flagWidgets
	}
	if flagCacheDir != "" {
		cfg.CacheDir = flagCacheDir
	}
	return cfg, nil
}

// loadTheme resolves the configured theme, preferring a custom palette
// file over an embedded name. A broken custom file degrades to the
// embedded theme rather than an empty status line.
func loadTheme(cfg *config.Config) theme.Theme {
	if cfg.ThemeFile != "" {
		if t, err := theme.LoadFile(cfg.ThemeFile); err == nil {
			return t
		}
	}
	return theme.ByName(cfg.Theme)
}
