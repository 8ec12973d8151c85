package widget

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/slatebar/slatebar/internal/compose"
	"github.com/slatebar/slatebar/internal/registry"
	"github.com/slatebar/slatebar/internal/severity"
	"github.com/slatebar/slatebar/internal/theme"
)

// Adapter runs one widget's "produce text, consult severity, emit colors"
// cycle and emits a compose.Segment. It is the isolation boundary: a
// misbehaving widget yields "no segment this cycle", never a failed render.
type Adapter struct {
	Registry *registry.Registry
	Theme    theme.Theme

	// Notify surfaces a user-visible notice for a disabled widget.
	// Defaults to stderr. Called at most once per widget per process.
	Notify func(widget, msg string)

	notified map[string]bool
}

// NewAdapter creates an adapter over a registry and theme.
func NewAdapter(reg *registry.Registry, th theme.Theme) *Adapter {
	return &Adapter{Registry: reg, Theme: th, notified: make(map[string]bool)}
}

// Build evaluates one widget. ok is false when the widget contributes no
// segment this cycle (empty output, hidden by severity, or failed).
func (a *Adapter) Build(ctx context.Context, w Widget) (compose.Segment, bool) {
	name := w.Name()

	content, err := w.Produce(ctx)
	if err != nil {
		a.notifyOnce(name, fmt.Sprintf("widget %s disabled: %v", name, err))
		return compose.Segment{}, false
	}
	if content == "" {
		return compose.Segment{}, false
	}

	cfg := a.thresholdConfig(name)

	level := severity.Normal
	explicit := false
	if sp, ok := w.(SeverityProvider); ok {
		level = sp.Severity()
		explicit = true
	} else if cfg.Mode != severity.ModeNone {
		level = severity.ComputeRaw(content, cfg)
	}
	hasThreshold := explicit || cfg.Mode != severity.ModeNone

	if w.Kind() == Conditional && !a.visible(name, level) {
		return compose.Segment{}, false
	}

	accentName := a.Registry.Resolve(name, OptAccentColor)
	accentIconName := a.Registry.Resolve(name, OptAccentIconColor)
	if hasThreshold {
		accentName, accentIconName = severity.ColorPair(level)
	}
	icon := a.Registry.Resolve(name, OptIcon)

	if dp, ok := w.(DisplayInfoProvider); ok {
		di := dp.DisplayInfo(content)
		if !di.Visible {
			return compose.Segment{}, false
		}
		if di.Accent != "" {
			accentName = di.Accent
		}
		if di.AccentIcon != "" {
			accentIconName = di.AccentIcon
		}
		if di.Icon != "" {
			icon = di.Icon
		}
	}

	return compose.Segment{
		Name:         name,
		Content:      content,
		Icon:         icon,
		Accent:       a.Theme.Resolve(accentName),
		AccentIcon:   a.Theme.Resolve(accentIconName),
		AccentSubtle: a.Theme.Subtle(accentName),
		AccentStrong: a.Theme.Strong(accentName),
		HasThreshold: hasThreshold,
	}, true
}

// BuildAll evaluates widgets in order and returns the visible segments,
// preserving order.
func (a *Adapter) BuildAll(ctx context.Context, widgets []Widget) []compose.Segment {
	var segments []compose.Segment
	for _, w := range widgets {
		if seg, ok := a.Build(ctx, w); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// thresholdConfig reads a widget's threshold options from the registry.
func (a *Adapter) thresholdConfig(name string) severity.ThresholdConfig {
	cfg := severity.ThresholdConfig{
		Mode: severity.ParseMode(a.Registry.Resolve(name, OptThresholdMode)),
	}
	if v, err := strconv.ParseFloat(a.Registry.Resolve(name, OptWarningThreshold), 64); err == nil {
		cfg.Warning = v
	}
	if v, err := strconv.ParseFloat(a.Registry.Resolve(name, OptCriticalThreshold), 64); err == nil {
		cfg.Critical = v
	}
	return cfg
}

// visible applies both visibility checks: the display_condition rule and
// the legacy show_only_warning flag. Both must pass (AND) — preserved
// behavior, even though it may not match user intuition.
func (a *Adapter) visible(name string, level severity.Level) bool {
	rule := severity.VisibilityRule{
		Condition: severity.ParseCondition(a.Registry.Resolve(name, OptDisplayCondition)),
	}
	if thr, ok := severity.ParseLevel(a.Registry.Resolve(name, OptDisplayThreshold)); ok {
		rule.Threshold = thr
	}
	if !severity.Visible(level, rule) {
		return false
	}
	if a.Registry.Resolve(name, OptShowOnlyWarning) == "true" && level <= severity.Normal {
		return false
	}
	return true
}

func (a *Adapter) notifyOnce(widget, msg string) {
	if a.notified == nil {
		a.notified = make(map[string]bool)
	}
	if a.notified[widget] {
		return
	}
	a.notified[widget] = true
	if a.Notify != nil {
		a.Notify(widget, msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}
