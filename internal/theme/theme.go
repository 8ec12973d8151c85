// Package theme resolves semantic color tokens ("warning", "error-subtle")
// to concrete tmux color values from a palette. Palettes are YAML files;
// a dark and a light palette ship embedded, and users can point the
// config at their own file.
package theme

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed themes/*.yaml
var builtin embed.FS

// Theme is a named palette of semantic tokens.
type Theme struct {
	Name   string            `yaml:"name"`
	Colors map[string]string `yaml:"colors"`
}

// ByName returns an embedded theme by name. Defaults to dark.
func ByName(name string) Theme {
	data, err := builtin.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		data, _ = builtin.ReadFile("themes/dark.yaml")
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil || t.Colors == nil {
		// Embedded palettes are validated by tests; an empty theme still
		// renders (every token resolves to itself).
		return Theme{Name: name, Colors: map[string]string{}}
	}
	return t
}

// LoadFile reads a user palette from disk.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme %s: %w", path, err)
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	if t.Colors == nil {
		t.Colors = map[string]string{}
	}
	return t, nil
}

// Names lists the embedded theme names.
func Names() []string {
	entries, err := builtin.ReadDir("themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Resolve maps a semantic token to its palette value. An unknown token
// passes through unchanged — tmux understands raw color names and hex
// values, so free-form colors in widget config keep working. Empty stays
// empty ("inherit").
func (t Theme) Resolve(name string) string {
	if name == "" {
		return ""
	}
	if v, ok := t.Colors[name]; ok {
		return v
	}
	return name
}

// Subtle resolves the "-subtle" variant of a token, falling back to the
// base token when the palette has no variant.
func (t Theme) Subtle(name string) string { return t.variant(name, "subtle") }

// Strong resolves the "-strong" variant of a token, falling back to the
// base token when the palette has no variant.
func (t Theme) Strong(name string) string { return t.variant(name, "strong") }

func (t Theme) variant(name, variant string) string {
	if name == "" {
		return ""
	}
	base := strings.TrimSuffix(strings.TrimSuffix(name, "-subtle"), "-strong")
	if v, ok := t.Colors[base+"-"+variant]; ok {
		return v
	}
	return t.Resolve(name)
}

// Surface returns the neutral gap color used between segments.
func (t Theme) Surface() string { return t.Colors["surface"] }

// Background returns the overall status-line background.
func (t Theme) Background() string { return t.Colors["background"] }

// Text returns the default content text color for non-threshold segments.
func (t Theme) Text() string { return t.Colors["text"] }
