// Package severity implements the three-stage severity pipeline shared by
// all threshold-driven widgets: compute a severity level from a numeric
// reading, decide visibility from a configurable rule, and map the level to
// a semantic color pair.
//
// All functions in this package are total: every input, however malformed,
// produces a usable output. A broken widget configuration must degrade to
// "show it, colored normally" rather than break the status line.
package severity

import (
	"strconv"
	"strings"
)

// Level is an ordered severity level. Comparisons are defined over the
// integer rank; a higher rank is always "louder" (never calmer).
type Level int

const (
	Inactive Level = iota
	Normal
	Info
	Warning
	Error
)

// String returns the lowercase level name used in configuration.
func (l Level) String() string {
	switch l {
	case Inactive:
		return "inactive"
	case Normal:
		return "normal"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "normal"
	}
}

// Rank returns the integer rank of the level.
func (l Level) Rank() int { return int(l) }

// ParseLevel maps a configured level name to a Level.
// Unknown names report ok=false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive":
		return Inactive, true
	case "normal":
		return Normal, true
	case "info":
		return Info, true
	case "warning":
		return Warning, true
	case "error":
		return Error, true
	default:
		return Normal, false
	}
}

// ThresholdMode selects the comparison direction for numeric evaluation.
type ThresholdMode int

const (
	// ModeNone disables numeric evaluation; severity is always Normal.
	ModeNone ThresholdMode = iota
	// ModeNormal means a higher value is worse (CPU%, disk%).
	ModeNormal
	// ModeInverted means a lower value is worse (battery%).
	ModeInverted
)

// ParseMode maps a configured mode name to a ThresholdMode.
// Unknown names disable threshold evaluation.
func ParseMode(s string) ThresholdMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return ModeNormal
	case "inverted":
		return ModeInverted
	default:
		return ModeNone
	}
}

// ThresholdConfig holds a widget's numeric threshold configuration.
type ThresholdConfig struct {
	Mode     ThresholdMode
	Warning  float64
	Critical float64
}

// Compute maps a numeric reading to a severity level.
//
// The numeric path only ever yields Normal, Warning, or Error. Inactive and
// Info are reserved for widgets that set their severity explicitly (for
// example a connectivity widget declaring itself Inactive when the radio is
// off).
func Compute(value float64, cfg ThresholdConfig) Level {
	switch cfg.Mode {
	case ModeNormal:
		if value >= cfg.Critical {
			return Error
		}
		if value >= cfg.Warning {
			return Warning
		}
		return Normal
	case ModeInverted:
		if value <= cfg.Critical {
			return Error
		}
		if value <= cfg.Warning {
			return Warning
		}
		return Normal
	default:
		return Normal
	}
}

// ComputeRaw parses a widget's textual output as a number and evaluates it.
// Non-numeric output yields Normal. A leading number with a trailing unit
// ("87%", "1.5 GB") is accepted.
func ComputeRaw(raw string, cfg ThresholdConfig) Level {
	if cfg.Mode == ModeNone {
		return Normal
	}
	v, ok := leadingNumber(raw)
	if !ok {
		return Normal
	}
	return Compute(v, cfg)
}

// leadingNumber extracts a leading float from a string, ignoring a unit
// suffix.
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && c == '-') {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Condition is the comparator of a visibility rule.
type Condition int

const (
	Always Condition = iota
	Eq
	Lt
	Lte
	Gt
	Gte
)

// ParseCondition maps a configured condition name to a Condition.
// Unknown names fall back to Always — a misconfigured rule must never hide
// everything.
func ParseCondition(s string) Condition {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eq":
		return Eq
	case "lt":
		return Lt
	case "lte":
		return Lte
	case "gt":
		return Gt
	case "gte":
		return Gte
	default:
		return Always
	}
}

// VisibilityRule decides whether a widget is shown for its current level.
// The zero value shows everything.
type VisibilityRule struct {
	Condition Condition
	Threshold Level
}

// Visible reports whether a widget at the given level should be shown.
//
// The default arm is deliberately permissive: any comparator this switch
// does not recognize means "show". Hiding on a typo would make the whole
// widget silently disappear, which is much harder to debug than a widget
// that shows too often.
func Visible(current Level, rule VisibilityRule) bool {
	cur, thr := current.Rank(), rule.Threshold.Rank()
	switch rule.Condition {
	case Eq:
		return cur == thr
	case Lt:
		return cur < thr
	case Lte:
		return cur <= thr
	case Gt:
		return cur > thr
	case Gte:
		return cur >= thr
	default:
		return true
	}
}

// ColorPair maps a severity level to its semantic (accent, accentIcon)
// color tokens. This table is the single source of truth for severity
// coloring; widgets must not hardcode colors for threshold-derived state.
func ColorPair(l Level) (accent, accentIcon string) {
	switch l {
	case Inactive:
		return "disabled", "disabled"
	case Info:
		return "info", "info-subtle"
	case Warning:
		return "warning", "warning-subtle"
	case Error:
		return "error", "error-subtle"
	default:
		return "secondary", "active"
	}
}
