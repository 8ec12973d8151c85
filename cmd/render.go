package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/compose"
	"github.com/slatebar/slatebar/internal/otel"
	"github.com/slatebar/slatebar/internal/registry"
	"github.com/slatebar/slatebar/internal/tmux"
	"github.com/slatebar/slatebar/internal/widget"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the status line once",
	Long: `Render the configured widgets into one tmux status-line string.

This is the command tmux invokes from status-right:

  set -g status-right "#(slatebar render)"

Widget failures never fail the render: a broken widget is skipped and
reported once via tmux display-message (or stderr with --verbose).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		otel.Version = Version
		tel, err := otel.Init(ctx, otel.OTELConfig{
			Endpoint: cfg.OTELEndpoint,
			Headers:  cfg.OTELHeaders,
		})
		if err != nil {
			return err
		}
		defer tel.Shutdown(ctx)

		ctx, span := tel.Tracer.Start(ctx, "render")
		defer span.End()

		start := time.Now()
		th := loadTheme(cfg)
		store := cache.NewStore(cfg.CacheDir)
		client := tmux.NewClient()
		reg := registry.New(tmux.OptionSource{Client: client, Ctx: ctx})

		var failed int64
		adapter := widget.NewAdapter(reg, th)
		adapter.Notify = func(name, msg string) {
			failed++
			if flagVerbose || !client.Available() {
				fmt.Fprintln(os.Stderr, msg)
				return
			}
			_ = client.DisplayMessage(ctx, msg)
		}

		entries := widget.ParseLine(cfg.Widgets)
		var widgets []widget.Widget
		for _, e := range entries {
			w, err := widget.Instantiate(e, reg, store)
			if err != nil {
				adapter.Notify(e.Name, err.Error())
				continue
			}
			widgets = append(widgets, w)
		}

		segments := adapter.BuildAll(ctx, widgets)
		out := compose.Render(segments, compose.Options{
			Background:  th.Background(),
			Transparent: cfg.Transparent,
			Separator:   compose.ParseSeparator(cfg.Separator),
			Spacing:     compose.ParseSpacing(cfg.Spacing),
			Surface:     th.Surface(),
			Text:        th.Text(),
		})

		shown := int64(len(segments))
		hidden := int64(len(entries)) - shown - failed
		if hidden < 0 {
			hidden = 0
		}
		span.SetAttributes(
			attribute.Int64("widgets.shown", shown),
			attribute.Int64("widgets.hidden", hidden),
			attribute.Int64("widgets.failed", failed),
		)
		tel.Metrics.RecordRender(ctx, time.Since(start), shown, hidden, failed)

		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
