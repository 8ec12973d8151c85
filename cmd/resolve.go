package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/registry"
	"github.com/slatebar/slatebar/internal/tmux"
	"github.com/slatebar/slatebar/internal/widget"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <widget> <option>",
	Short: "Print one resolved widget option",
	Long: `Resolve a single widget option through the full precedence chain
(tmux user option, declared default, configuration fallback) and print
the concrete value. Useful for debugging why a widget looks the way it
does:

  slatebar resolve loadavg warning_threshold`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, option := args[0], args[1]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reg := registry.New(tmux.OptionSource{Client: tmux.NewClient(), Ctx: cmd.Context()})
		store := cache.NewStore(cfg.CacheDir)
		for _, e := range widget.ParseLine(cfg.Widgets) {
			_, _ = widget.Instantiate(e, reg, store)
		}

		fmt.Println(reg.Resolve(name, option))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
