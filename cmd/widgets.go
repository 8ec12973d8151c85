package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/registry"
	"github.com/slatebar/slatebar/internal/widget"
)

var flagWidgetsJSON bool

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List configured widgets and their options",
	Long: `List the widgets of the current configuration together with every
option they declare, the option's type, and its default value.

Options are set per widget via tmux user options:

  set -g @slatebar-<widget>-<option> <value>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reg := registry.New(nil)
		store := cache.NewStore(cfg.CacheDir)
		for _, e := range widget.ParseLine(cfg.Widgets) {
			if _, err := widget.Instantiate(e, reg, store); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}

		descs := reg.Descriptors("")
		if flagWidgetsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(descs)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WIDGET\tOPTION\tTYPE\tDEFAULT\tDESCRIPTION")
		for _, d := range descs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.Widget, d.Name, d.Kind, d.Default, d.Description)
		}
		return w.Flush()
	},
}

func init() {
	widgetsCmd.Flags().BoolVar(&flagWidgetsJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(widgetsCmd)
}
