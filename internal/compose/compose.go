// Package compose assembles resolved widget segments into the final tmux
// status-line string: separators, spacing, icon/content color blocks, and
// first/last-segment edge handling.
//
// The compositor is a pure function over its inputs. It never reorders
// segments, never calls the cache or any widget, and never fails: a segment
// with missing color fields falls back to empty color directives, which
// tmux interprets as "inherit".
package compose

import "strings"

// Segment is the unit the compositor consumes. Segments are produced fresh
// each render and never persisted.
type Segment struct {
	Name    string
	Content string
	Icon    string

	// Semantic colors, already resolved to concrete tmux values.
	Accent       string
	AccentIcon   string
	AccentStrong string
	AccentSubtle string

	// HasThreshold switches the segment to the subtle/strong triad so
	// severity-colored widgets read as "alert" while normal widgets stay
	// neutral.
	HasThreshold bool
}

// SeparatorStyle selects the glyph for the very first segment's leading
// separator.
type SeparatorStyle int

const (
	// SeparatorNormal is the powerline arrow.
	SeparatorNormal SeparatorStyle = iota
	// SeparatorRounded is the pill half-circle.
	SeparatorRounded
)

// ParseSeparator maps a configured separator name to a style.
func ParseSeparator(s string) SeparatorStyle {
	if strings.ToLower(strings.TrimSpace(s)) == "rounded" {
		return SeparatorRounded
	}
	return SeparatorNormal
}

func (s SeparatorStyle) String() string {
	if s == SeparatorRounded {
		return "rounded"
	}
	return "normal"
}

// Spacing controls neutral gaps around segments.
type Spacing int

const (
	// SpacingNone renders segments back to back.
	SpacingNone Spacing = iota
	// SpacingWidgets inserts a gap between adjacent segments.
	SpacingWidgets
	// SpacingBoth additionally inserts a gap before the first segment.
	SpacingBoth
)

// ParseSpacing maps a configured spacing name to a mode.
func ParseSpacing(s string) Spacing {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both":
		return SpacingBoth
	case "widgets-only", "widgets":
		return SpacingWidgets
	default:
		return SpacingNone
	}
}

func (s Spacing) String() string {
	switch s {
	case SpacingBoth:
		return "both"
	case SpacingWidgets:
		return "widgets-only"
	default:
		return "none"
	}
}

// Options is the render-wide configuration.
type Options struct {
	// Background is the overall status-line background color.
	Background string
	// Transparent replaces the background and gap colors with "default".
	Transparent bool
	// Separator is the glyph style for the first segment.
	Separator SeparatorStyle
	// Spacing is the inter-segment gap mode.
	Spacing Spacing
	// Surface is the neutral gap color.
	Surface string
	// Text is the default content text color for non-threshold segments.
	Text string
}

// Powerline glyphs. Only the first segment's leading separator honors the
// rounded style; every other divider uses the arrow.
const (
	glyphArrow   = "\ue0b2"
	glyphRounded = "\ue0b6"
)

// Render produces the status-line string for an ordered segment list.
// An empty list yields an empty string with no stray separators.
func Render(segments []Segment, opts Options) string {
	if len(segments) == 0 {
		return ""
	}

	statusBG := opts.Background
	if opts.Transparent || statusBG == "" {
		statusBG = "default"
	}
	gapBG := opts.Surface
	if opts.Transparent || gapBG == "" {
		gapBG = "default"
	}

	var b strings.Builder
	prevBG := statusBG
	for i, seg := range segments {
		iconBG, contentBG, textFG := tiers(seg, opts)

		// Close the previous color run with a neutral gap. The last
		// segment has no following gap, so the string ends on its
		// content block.
		if (i > 0 && opts.Spacing != SpacingNone) || (i == 0 && opts.Spacing == SpacingBoth) {
			b.WriteString(style("default", gapBG))
			b.WriteString(" ")
			prevBG = gapBG
		}

		glyph := glyphArrow
		if i == 0 && opts.Separator == SeparatorRounded {
			glyph = glyphRounded
		}
		b.WriteString(style(iconBG, prevBG))
		b.WriteString(glyph)

		b.WriteString(style(textFG, iconBG))
		b.WriteString(" ")
		b.WriteString(seg.Icon)
		b.WriteString(" ")

		b.WriteString(style(contentBG, iconBG))
		b.WriteString(glyphArrow)

		b.WriteString(style(textFG, contentBG))
		b.WriteString(" ")
		b.WriteString(seg.Content)
		b.WriteString(" ")

		prevBG = contentBG
	}
	return b.String()
}

// tiers returns the two-tier fill for a segment. This is the only place the
// subtle/strong colors are consumed.
func tiers(seg Segment, opts Options) (iconBG, contentBG, textFG string) {
	if seg.HasThreshold {
		return seg.AccentSubtle, seg.Accent, seg.AccentStrong
	}
	return seg.AccentIcon, seg.Accent, opts.Text
}

// style emits a tmux color directive. Empty colors are omitted so tmux
// inherits; a fully empty style emits nothing at all.
func style(fg, bg string) string {
	var parts []string
	if fg != "" {
		parts = append(parts, "fg="+fg)
	}
	if bg != "" {
		parts = append(parts, "bg="+bg)
	}
	if len(parts) == 0 {
		return ""
	}
	return "#[" + strings.Join(parts, ",") + "]"
}
