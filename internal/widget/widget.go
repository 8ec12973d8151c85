// Package widget defines the plugin contract: the Widget interface every
// status-line component implements, the optional capability interfaces, and
// the adapter that turns a widget's output into a renderable segment.
package widget

import (
	"context"
	"strings"

	"github.com/slatebar/slatebar/internal/severity"
)

// Kind classifies a widget's relationship to the severity pipeline.
type Kind int

const (
	// Static widgets are never severity-hidden.
	Static Kind = iota
	// Conditional widgets consult the severity evaluator for visibility.
	Conditional
)

// ParseKind maps a configured type name to a Kind. Unknown names are
// static — a widget that always shows is the safe misconfiguration.
func ParseKind(s string) Kind {
	if strings.ToLower(strings.TrimSpace(s)) == "conditional" {
		return Conditional
	}
	return Static
}

// Widget is the required contract for every status-line component.
type Widget interface {
	// Name identifies the widget; it keys option resolution.
	Name() string
	// Kind reports whether the widget participates in severity hiding.
	Kind() Kind
	// Produce returns the widget's textual output. An empty string
	// suppresses the widget for this cycle. Errors disable the widget
	// for the cycle and surface a one-time notice.
	Produce(ctx context.Context) (string, error)
}

// DisplayInfo is a widget-specific override of default coloring.
// Empty color and icon fields mean "use the registry default".
type DisplayInfo struct {
	Visible    bool
	Accent     string
	AccentIcon string
	Icon       string
}

// DisplayInfoProvider is an optional capability: widgets that color
// themselves (a vault-lock indicator, say) implement it and the adapter
// discovers it by type assertion.
type DisplayInfoProvider interface {
	DisplayInfo(content string) DisplayInfo
}

// SeverityProvider is an optional capability for widgets that manage their
// severity directly instead of through numeric thresholds. It is the only
// path that can yield Inactive or Info.
type SeverityProvider interface {
	Severity() severity.Level
}

// Option names every widget resolves through the registry.
const (
	OptAccentColor       = "accent_color"
	OptAccentIconColor   = "accent_icon_color"
	OptIcon              = "icon"
	OptThresholdMode     = "threshold_mode"
	OptWarningThreshold  = "warning_threshold"
	OptCriticalThreshold = "critical_threshold"
	OptShowOnlyWarning   = "show_only_warning"
	OptDisplayCondition  = "display_condition"
	OptDisplayThreshold  = "display_threshold"
)
