package widget

import (
	"strconv"
	"strings"
	"time"

	"github.com/slatebar/slatebar/internal/registry"
)

// Entry is one widget declaration from the status-line configuration.
//
// The line format is a semicolon-separated list; each entry is either an
// internal widget
//
//	name:accentColor:accentIconColor:icon:type
//
// or a user-supplied external command widget
//
//	EXTERNAL|icon|content|accentColor|accentIconColor|ttlSeconds[|displayName[|visibilityCommand]]
//
// where content may be a literal string or a `cmd` / $(cmd) command
// reference executed and cached under ttlSeconds.
type Entry struct {
	Name       string
	Accent     string
	AccentIcon string
	Icon       string
	Type       Kind
	External   *ExternalSpec
}

// ExternalSpec carries the extra fields of an EXTERNAL entry.
type ExternalSpec struct {
	Content           string
	TTL               time.Duration
	VisibilityCommand string
}

// ParseLine parses a widget configuration line. Malformed entries are
// skipped, not fatal — a typo in one widget must not blank the bar.
func ParseLine(line string) []Entry {
	var entries []Entry
	for _, raw := range strings.Split(line, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "EXTERNAL|") {
			if e, ok := parseExternal(raw); ok {
				entries = append(entries, e)
			}
			continue
		}
		entries = append(entries, parseInternal(raw))
	}
	return entries
}

// parseInternal parses name:accent:accentIcon:icon:type. Trailing fields
// are optional.
func parseInternal(s string) Entry {
	fields := strings.Split(s, ":")
	e := Entry{Name: strings.TrimSpace(fields[0])}
	if len(fields) > 1 {
		e.Accent = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		e.AccentIcon = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 {
		e.Icon = strings.TrimSpace(fields[3])
	}
	if len(fields) > 4 {
		e.Type = ParseKind(fields[4])
	}
	return e
}

// parseExternal parses an EXTERNAL| entry. At least the six core fields
// must be present.
func parseExternal(s string) (Entry, bool) {
	fields := strings.Split(s, "|")
	if len(fields) < 6 {
		return Entry{}, false
	}
	ttlSeconds, err := strconv.Atoi(strings.TrimSpace(fields[5]))
	if err != nil || ttlSeconds < 0 {
		ttlSeconds = 0
	}
	e := Entry{
		Name:       "external",
		Icon:       strings.TrimSpace(fields[1]),
		Accent:     strings.TrimSpace(fields[3]),
		AccentIcon: strings.TrimSpace(fields[4]),
		External: &ExternalSpec{
			Content: strings.TrimSpace(fields[2]),
			TTL:     time.Duration(ttlSeconds) * time.Second,
		},
	}
	if len(fields) > 6 && strings.TrimSpace(fields[6]) != "" {
		e.Name = strings.TrimSpace(fields[6])
	}
	if len(fields) > 7 {
		e.External.VisibilityCommand = strings.TrimSpace(fields[7])
	}
	return e, true
}

// Seed installs the entry's colors and icon as global fallback defaults so
// option resolution finds them below any host override and widget default.
func (e Entry) Seed(reg *registry.Registry) {
	if e.Accent != "" {
		reg.SetFallback(e.Name, OptAccentColor, e.Accent)
	}
	if e.AccentIcon != "" {
		reg.SetFallback(e.Name, OptAccentIconColor, e.AccentIcon)
	}
	if e.Icon != "" {
		reg.SetFallback(e.Name, OptIcon, e.Icon)
	}
}

// CommandRef reports whether an external content field is a command
// reference (`cmd` or $(cmd)) rather than a literal, and returns the
// command.
func CommandRef(content string) (string, bool) {
	if len(content) >= 2 && strings.HasPrefix(content, "`") && strings.HasSuffix(content, "`") {
		return content[1 : len(content)-1], true
	}
	if strings.HasPrefix(content, "$(") && strings.HasSuffix(content, ")") {
		return content[2 : len(content)-1], true
	}
	return "", false
}
