// Package preview renders status-line segments as ANSI text for terminals
// outside tmux. The layout mirrors the tmux compositor: separator glyph,
// icon block, transition, content. Useful for checking themes and widget
// configuration without reloading tmux.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/slatebar/slatebar/internal/compose"
)

const (
	glyphArrow   = "\ue0b2" // left-pointing powerline triangle
	glyphRounded = "\ue0b6" // left rounded half-circle
)

// ANSI renders segments with lipgloss escape sequences instead of tmux
// style directives. An empty or "default" background maps to the
// terminal's own background.
func ANSI(segs []compose.Segment, opts compose.Options) string {
	if len(segs) == 0 {
		return ""
	}

	statusBG := opts.Background
	gapBG := opts.Surface
	if opts.Transparent {
		statusBG = ""
		gapBG = ""
	}

	var b strings.Builder
	prevBG := statusBG
	for i, seg := range segs {
		iconBG, contentBG, textFG := tiers(seg, opts.Text)

		gap := opts.Spacing == compose.SpacingBoth && i == 0 ||
			opts.Spacing != compose.SpacingNone && i > 0
		if gap {
			b.WriteString(paint(" ", "", gapBG))
			prevBG = gapBG
		}

		sep := glyphArrow
		if opts.Separator == compose.SeparatorRounded && i == 0 {
			sep = glyphRounded
		}
		b.WriteString(paint(sep, iconBG, prevBG))
		b.WriteString(paint(" "+seg.Icon+" ", textFG, iconBG))
		b.WriteString(paint(glyphArrow, contentBG, iconBG))
		b.WriteString(paint(" "+seg.Content+" ", textFG, contentBG))
		prevBG = contentBG
	}
	return b.String()
}

// tiers mirrors the compositor's fill selection: threshold widgets get the
// subtle/base/strong triad, plain widgets get icon accent plus theme text.
func tiers(seg compose.Segment, themeText string) (iconBG, contentBG, textFG string) {
	if seg.HasThreshold {
		return seg.AccentSubtle, seg.Accent, seg.AccentStrong
	}
	return seg.AccentIcon, seg.Accent, themeText
}

func paint(text, fg, bg string) string {
	st := lipgloss.NewStyle()
	if fg != "" && fg != "default" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg != "" && bg != "default" {
		st = st.Background(lipgloss.Color(bg))
	}
	return st.Render(text)
}
