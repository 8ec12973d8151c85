package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/compose"
	"github.com/slatebar/slatebar/internal/preview"
	"github.com/slatebar/slatebar/internal/registry"
	"github.com/slatebar/slatebar/internal/widget"
)

var flagInteractive bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the status line outside tmux",
	Long: `Render the configured status line as ANSI text in the current
terminal. With --interactive, opens a TUI that cycles themes and
separator styles and simulates threshold values live.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := cache.NewStore(cfg.CacheDir)

		if flagInteractive {
			t := &preview.TUI{Config: cfg, Store: store}
			return t.Run(cmd.Context())
		}

		th := loadTheme(cfg)
		reg := registry.New(nil)
		adapter := widget.NewAdapter(reg, th)
		adapter.Notify = func(name, msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}

		var widgets []widget.Widget
		for _, e := range widget.ParseLine(cfg.Widgets) {
			w, err := widget.Instantiate(e, reg, store)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			widgets = append(widgets, w)
		}

		segments := adapter.BuildAll(cmd.Context(), widgets)
		fmt.Println(preview.ANSI(segments, compose.Options{
			Background:  th.Background(),
			Transparent: cfg.Transparent,
			Separator:   compose.ParseSeparator(cfg.Separator),
			Spacing:     compose.ParseSpacing(cfg.Spacing),
			Surface:     th.Surface(),
			Text:        th.Text(),
		}))
		return nil
	},
}

func init() {
	previewCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "open the interactive preview TUI")
	rootCmd.AddCommand(previewCmd)
}
