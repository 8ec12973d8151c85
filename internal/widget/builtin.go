package widget

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/registry"
)

// Instantiate turns a parsed entry into a runnable widget, declaring its
// options on the registry. Unknown widget names are an error the adapter
// will surface once and then ignore.
func Instantiate(e Entry, reg *registry.Registry, store *cache.Store) (Widget, error) {
	e.Seed(reg)
	if e.External != nil {
		return newExternal(e, reg, store), nil
	}
	switch e.Name {
	case "datetime":
		return newDateTime(reg), nil
	case "hostname":
		return newHostname(reg), nil
	case "loadavg":
		return newLoadavg(reg, e.Type), nil
	case "battery":
		return newBattery(reg, e.Type), nil
	case "git":
		return newGit(reg), nil
	default:
		return nil, fmt.Errorf("unknown widget %q", e.Name)
	}
}

// declareCommon registers the options every widget shares.
func declareCommon(reg *registry.Registry, name string) {
	reg.Declare(name, OptAccentColor, registry.Color, "", "accent color token")
	reg.Declare(name, OptAccentIconColor, registry.Color, "", "icon accent color token")
	reg.Declare(name, OptIcon, registry.Icon, "", "icon glyph")
	reg.Declare(name, OptThresholdMode, registry.String, "none", "threshold direction: none, normal, inverted")
	reg.Declare(name, OptWarningThreshold, registry.Number, "0", "warning threshold")
	reg.Declare(name, OptCriticalThreshold, registry.Number, "0", "critical threshold")
	reg.Declare(name, OptShowOnlyWarning, registry.Bool, "false", "hide unless severity exceeds normal")
	reg.Declare(name, OptDisplayCondition, registry.String, "always", "visibility comparator")
	reg.Declare(name, OptDisplayThreshold, registry.String, "normal", "visibility severity threshold")
}

// dateTime shows the current time.
type dateTime struct {
	reg *registry.Registry
}

func newDateTime(reg *registry.Registry) *dateTime {
	declareCommon(reg, "datetime")
	reg.Declare("datetime", "format", registry.String, "15:04", "Go time layout")
	return &dateTime{reg: reg}
}

func (w *dateTime) Name() string { return "datetime" }
func (w *dateTime) Kind() Kind   { return Static }

func (w *dateTime) Produce(ctx context.Context) (string, error) {
	return time.Now().Format(w.reg.Resolve("datetime", "format")), nil
}

// hostname shows the machine name.
type hostname struct {
	reg *registry.Registry
}

func newHostname(reg *registry.Registry) *hostname {
	declareCommon(reg, "hostname")
	reg.Declare("hostname", "short", registry.Bool, "true", "strip the domain part")
	return &hostname{reg: reg}
}

func (w *hostname) Name() string { return "hostname" }
func (w *hostname) Kind() Kind   { return Static }

func (w *hostname) Produce(ctx context.Context) (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", err
	}
	if w.reg.Resolve("hostname", "short") == "true" {
		if idx := strings.IndexByte(name, '.'); idx > 0 {
			name = name[:idx]
		}
	}
	return name, nil
}

// loadavg shows the 1-minute load average, threshold-colored.
type loadavg struct {
	reg  *registry.Registry
	kind Kind
	path string
}

func newLoadavg(reg *registry.Registry, kind Kind) *loadavg {
	declareCommon(reg, "loadavg")
	reg.Declare("loadavg", OptThresholdMode, registry.String, "normal", "threshold direction: none, normal, inverted")
	reg.Declare("loadavg", OptWarningThreshold, registry.Number, "4", "warning threshold")
	reg.Declare("loadavg", OptCriticalThreshold, registry.Number, "8", "critical threshold")
	return &loadavg{reg: reg, kind: kind, path: "/proc/loadavg"}
}

func (w *loadavg) Name() string { return "loadavg" }
func (w *loadavg) Kind() Kind   { return w.kind }

func (w *loadavg) Produce(ctx context.Context) (string, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// battery shows the charge percentage of the first battery, with inverted
// thresholds (lower is worse).
type battery struct {
	reg  *registry.Registry
	kind Kind
	path string
}

func newBattery(reg *registry.Registry, kind Kind) *battery {
	declareCommon(reg, "battery")
	reg.Declare("battery", OptThresholdMode, registry.String, "inverted", "threshold direction: none, normal, inverted")
	reg.Declare("battery", OptWarningThreshold, registry.Number, "50", "warning threshold")
	reg.Declare("battery", OptCriticalThreshold, registry.Number, "20", "critical threshold")
	reg.Declare("battery", "path", registry.Path, "/sys/class/power_supply/BAT0/capacity", "sysfs capacity file")
	return &battery{reg: reg, kind: kind}
}

func (w *battery) Name() string { return "battery" }
func (w *battery) Kind() Kind   { return w.kind }

func (w *battery) Produce(ctx context.Context) (string, error) {
	path := w.path
	if path == "" {
		path = w.reg.Resolve("battery", "path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		// No battery is not a failure; the widget just has nothing to
		// say on this machine.
		return "", nil
	}
	pct, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return "", nil
	}
	return fmt.Sprintf("%d%%", pct), nil
}

// git shows the current branch of the configured repository.
type git struct {
	reg *registry.Registry
}

func newGit(reg *registry.Registry) *git {
	declareCommon(reg, "git")
	reg.Declare("git", "path", registry.Path, "", "repository to inspect (default: current directory)")
	return &git{reg: reg}
}

func (w *git) Name() string { return "git" }
func (w *git) Kind() Kind   { return Static }

func (w *git) Produce(ctx context.Context) (string, error) {
	args := []string{}
	if dir := w.reg.Resolve("git", "path"); dir != "" {
		args = append(args, "-C", dir)
	}
	args = append(args, "rev-parse", "--abbrev-ref", "HEAD")
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		// Outside a repository: suppress, do not disable.
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

// external wraps a user-supplied command widget from an EXTERNAL entry.
// Command output is cached under the entry's TTL so expensive commands
// (network calls) amortize across render cycles.
type external struct {
	name  string
	spec  ExternalSpec
	reg   *registry.Registry
	store *cache.Store
}

func newExternal(e Entry, reg *registry.Registry, store *cache.Store) *external {
	declareCommon(reg, e.Name)
	return &external{name: e.Name, spec: *e.External, reg: reg, store: store}
}

func (w *external) Name() string { return w.name }
func (w *external) Kind() Kind   { return Static }

func (w *external) Produce(ctx context.Context) (string, error) {
	if w.spec.VisibilityCommand != "" {
		if err := exec.CommandContext(ctx, "sh", "-c", w.spec.VisibilityCommand).Run(); err != nil {
			return "", nil
		}
	}

	cmd, ok := CommandRef(w.spec.Content)
	if !ok {
		return w.spec.Content, nil
	}
	return w.store.GetOrCompute("external:"+w.name+":"+cmd, w.spec.TTL, func() (string, error) {
		out, err := exec.CommandContext(ctx, "sh", "-c", cmd).Output()
		if err != nil {
			return "", fmt.Errorf("running %q: %w", cmd, err)
		}
		return strings.TrimSpace(string(out)), nil
	})
}
