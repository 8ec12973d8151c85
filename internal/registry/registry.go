// Package registry implements the typed, lazily-resolved option registry
// that backs every widget's configuration.
//
// Each widget declares its options once at process start; consumers resolve
// concrete values through a fixed precedence chain and the result is
// memoized for the remainder of the process, so a single render pass is
// internally consistent even if the host configuration changes underneath.
//
// Resolution never fails: an invalid or missing value degrades to the
// declared default, then to the empty string. Partial or garbled
// configuration must never break the status line.
package registry

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Kind is the declared type of an option.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Color
	Icon
	Key
	Path
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Color:
		return "color"
	case Icon:
		return "icon"
	case Key:
		return "key"
	case Path:
		return "path"
	default:
		return "string"
	}
}

// Descriptor declares one option of one widget. Descriptors are immutable
// after declaration.
type Descriptor struct {
	Widget      string
	Name        string
	Kind        Kind
	Default     string
	Description string
}

// Overrides is the host's per-widget configuration source, typically backed
// by tmux user options. Lookup reports ok=false when the host has no
// explicit setting.
type Overrides interface {
	Lookup(widget, option string) (string, bool)
}

// MapOverrides is an in-memory Overrides, used by tests and the preview TUI.
type MapOverrides map[string]string

// Lookup implements Overrides. Keys are "widget.option".
func (m MapOverrides) Lookup(widget, option string) (string, bool) {
	v, ok := m[widget+"."+option]
	return v, ok
}

type optionKey struct {
	widget string
	option string
}

// Registry holds option descriptors and the per-process memoization of
// resolved values. Construct one per render invocation and pass it to every
// component; there is no package-global state.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[optionKey]Descriptor
	resolved    map[optionKey]string
	fallbacks   map[string]string
	overrides   Overrides
}

// New creates an empty registry reading host overrides from src.
// A nil src means no host overrides exist.
func New(src Overrides) *Registry {
	return &Registry{
		descriptors: make(map[optionKey]Descriptor),
		resolved:    make(map[optionKey]string),
		fallbacks:   make(map[string]string),
		overrides:   src,
	}
}

// Declare registers an option descriptor. Re-declaring the same
// (widget, option) overwrites the previous descriptor. Declaration has no
// side effects beyond registration; in particular it does not invalidate an
// already-memoized value.
func (r *Registry) Declare(widget, name string, kind Kind, def, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := optionKey{widget, name}
	r.descriptors[k] = Descriptor{
		Widget:      widget,
		Name:        name,
		Kind:        kind,
		Default:     def,
		Description: description,
	}
}

// SetFallback installs a global fallback default for "widget.option",
// consulted only when neither a host override nor a declared default
// produced a value.
func (r *Registry) SetFallback(widget, option, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks[widget+"."+option] = value
}

// Resolve returns the concrete value of an option. Precedence, first match
// wins:
//
//  1. the memoized value from an earlier Resolve this process
//  2. an explicit host override
//  3. the widget's declared default
//  4. a global fallback for "widget.option"
//  5. the empty string
//
// The found value is validated against the declared kind, memoized, and
// returned. Resolve never fails.
func (r *Registry) Resolve(widget, name string) string {
	k := optionKey{widget, name}

	r.mu.RLock()
	if v, ok := r.resolved[k]; ok {
		r.mu.RUnlock()
		return v
	}
	desc, declared := r.descriptors[k]
	fallback, hasFallback := r.fallbacks[widget+"."+name]
	r.mu.RUnlock()

	var value string
	switch {
	case r.lookupOverride(widget, name, &value):
	case declared && desc.Default != "":
		value = desc.Default
	case hasFallback:
		value = fallback
	}

	if declared {
		value = validate(value, desc)
	}

	r.mu.Lock()
	// First write wins if another goroutine raced us here; the memoized
	// value must never change mid-render.
	if prev, ok := r.resolved[k]; ok {
		value = prev
	} else {
		r.resolved[k] = value
	}
	r.mu.Unlock()
	return value
}

func (r *Registry) lookupOverride(widget, name string, out *string) bool {
	if r.overrides == nil {
		return false
	}
	v, ok := r.overrides.Lookup(widget, name)
	if !ok {
		return false
	}
	*out = v
	return true
}

// ClearCache purges memoized values for one widget, or for all widgets when
// widget is empty. Used by test harnesses only; normal render flow never
// clears.
func (r *Registry) ClearCache(widget string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if widget == "" {
		r.resolved = make(map[optionKey]string)
		return
	}
	for k := range r.resolved {
		if k.widget == widget {
			delete(r.resolved, k)
		}
	}
}

// Descriptors returns the declared descriptors for one widget, or for all
// widgets when widget is empty, sorted by widget then option name.
func (r *Registry) Descriptors(widget string) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Descriptor
	for k, d := range r.descriptors {
		if widget != "" && k.widget != widget {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Widget != out[j].Widget {
			return out[i].Widget < out[j].Widget
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// validate applies kind validation. Numbers must match an integer pattern
// or revert to the declared default; bools are normalized through a truth
// table or revert to the declared default. Colors, icons, keys, and paths
// are free-form strings resolved downstream.
func validate(value string, desc Descriptor) string {
	switch desc.Kind {
	case Number:
		if !integerPattern.MatchString(strings.TrimSpace(value)) {
			return desc.Default
		}
		return strings.TrimSpace(value)
	case Bool:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return "true"
		case "false", "0", "no", "off":
			return "false"
		default:
			return desc.Default
		}
	default:
		return value
	}
}
