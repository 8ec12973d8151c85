package compose

import (
	"regexp"
	"strings"
	"testing"
)

func plainSegment(name, content, icon string) Segment {
	return Segment{
		Name:       name,
		Content:    content,
		Icon:       icon,
		Accent:     "#414868",
		AccentIcon: "#7aa2f7",
	}
}

func thresholdSegment(name, content string) Segment {
	return Segment{
		Name:         name,
		Content:      content,
		Icon:         "!",
		Accent:       "#e06c75",
		AccentSubtle: "#45222a",
		AccentStrong: "#ffd3d8",
		HasThreshold: true,
	}
}

func defaultOptions() Options {
	return Options{
		Background: "#1a1b26",
		Surface:    "#24283b",
		Text:       "#c0caf5",
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil, defaultOptions()); got != "" {
		t.Errorf("Render(nil): got %q, want empty", got)
	}
	if got := Render([]Segment{}, defaultOptions()); got != "" {
		t.Errorf("Render([]): got %q, want empty", got)
	}
}

func TestRenderSingleSegment(t *testing.T) {
	seg := plainSegment("cpu", "42%", "C")
	got := Render([]Segment{seg}, defaultOptions())

	want := "#[fg=#7aa2f7,bg=#1a1b26]" + // leading separator over status bg
		"#[fg=#c0caf5,bg=#7aa2f7] C " + // icon block
		"#[fg=#414868,bg=#7aa2f7]" + // icon-to-content transition
		"#[fg=#c0caf5,bg=#414868] 42% " // content block, no trailing reset
	if got != want {
		t.Errorf("Render:\n got %q\nwant %q", got, want)
	}
}

func TestRenderThresholdSegmentUsesTriad(t *testing.T) {
	seg := thresholdSegment("cpu", "95%")
	got := Render([]Segment{seg}, defaultOptions())

	if !strings.Contains(got, "bg=#45222a") {
		t.Errorf("icon background should be accent-subtle, got %q", got)
	}
	if !strings.Contains(got, "fg=#ffd3d8") {
		t.Errorf("text color should be accent-strong, got %q", got)
	}
	if strings.Contains(got, "#c0caf5") {
		t.Errorf("threshold segment must not use the default text color, got %q", got)
	}
}

func TestRenderRoundedFirstSeparatorOnly(t *testing.T) {
	segs := []Segment{plainSegment("a", "1", "A"), plainSegment("b", "2", "B")}
	opts := defaultOptions()
	opts.Separator = SeparatorRounded

	got := Render(segs, opts)
	if strings.Count(got, "\ue0b6") != 1 {
		t.Errorf("rounded glyph count: got %d, want 1 (first segment only) in %q",
			strings.Count(got, "\ue0b6"), got)
	}
	if !strings.HasPrefix(got, "#[fg=#7aa2f7,bg=#1a1b26]") {
		t.Errorf("first separator should be rounded, got %q", got)
	}
}

// styleRuns extracts each #[...] directive with the literal text that
// follows it.
var styleRe = regexp.MustCompile(`#\[([^\]]*)\]`)

func backgrounds(s string) []string {
	var bgs []string
	for _, m := range styleRe.FindAllStringSubmatch(s, -1) {
		for _, part := range strings.Split(m[1], ",") {
			if strings.HasPrefix(part, "bg=") {
				bgs = append(bgs, strings.TrimPrefix(part, "bg="))
			}
		}
	}
	return bgs
}

func TestRenderContiguity(t *testing.T) {
	// Separator i+1's background must equal segment i's content
	// background for visual contiguity.
	segs := []Segment{
		plainSegment("a", "1", "A"),
		thresholdSegment("b", "2"),
		plainSegment("c", "3", "C"),
	}
	got := Render(segs, defaultOptions())

	// Each segment emits 4 styles: separator, icon, transition, content.
	// Separator style of segment i (i>0) is at index 4*i.
	bgs := backgrounds(got)
	if len(bgs) != 12 {
		t.Fatalf("style count: got %d backgrounds, want 12 in %q", len(bgs), got)
	}
	for i := 1; i < 3; i++ {
		sepBG := bgs[4*i]
		prevContentBG := bgs[4*i-1]
		if sepBG != prevContentBG {
			t.Errorf("separator %d background %q != previous content background %q",
				i, sepBG, prevContentBG)
		}
	}
}

func TestRenderSpacingWidgets(t *testing.T) {
	segs := []Segment{plainSegment("a", "1", "A"), plainSegment("b", "2", "B")}
	opts := defaultOptions()
	opts.Spacing = SpacingWidgets

	got := Render(segs, opts)

	// One gap between the two segments, drawn in the surface color, and
	// the following separator sits on the gap color.
	if !strings.Contains(got, "#[fg=default,bg=#24283b] ") {
		t.Errorf("expected a surface-colored gap in %q", got)
	}
	if !strings.Contains(got, "#[fg=#7aa2f7,bg=#24283b]") {
		t.Errorf("separator after gap should sit on the gap color in %q", got)
	}
	if strings.HasPrefix(got, "#[fg=default") {
		t.Errorf("SpacingWidgets must not emit a leading gap, got %q", got)
	}
}

func TestRenderSpacingBoth(t *testing.T) {
	segs := []Segment{plainSegment("a", "1", "A")}
	opts := defaultOptions()
	opts.Spacing = SpacingBoth

	got := Render(segs, opts)
	if !strings.HasPrefix(got, "#[fg=default,bg=#24283b] ") {
		t.Errorf("SpacingBoth should emit a leading gap, got %q", got)
	}
}

func TestRenderTransparent(t *testing.T) {
	segs := []Segment{plainSegment("a", "1", "A"), plainSegment("b", "2", "B")}
	opts := defaultOptions()
	opts.Transparent = true
	opts.Spacing = SpacingWidgets

	got := Render(segs, opts)
	if !strings.HasPrefix(got, "#[fg=#7aa2f7,bg=default]") {
		t.Errorf("transparent first separator should sit on default bg, got %q", got)
	}
	if !strings.Contains(got, "#[fg=default,bg=default] ") {
		t.Errorf("transparent gap should use default bg, got %q", got)
	}
}

func TestRenderMissingColorsDoNotCrash(t *testing.T) {
	segs := []Segment{{Name: "bare", Content: "hello"}}
	got := Render(segs, defaultOptions())

	if !strings.Contains(got, " hello ") {
		t.Errorf("content missing from %q", got)
	}
	// Empty colors are omitted, never emitted as "fg=".
	if strings.Contains(got, "fg=,") || strings.Contains(got, "bg=]") || strings.Contains(got, "fg=]") {
		t.Errorf("malformed empty color directive in %q", got)
	}
}

func TestRenderPreservesOrder(t *testing.T) {
	segs := []Segment{
		plainSegment("first", "one", "1"),
		plainSegment("second", "two", "2"),
		plainSegment("third", "three", "3"),
	}
	got := Render(segs, defaultOptions())

	iOne := strings.Index(got, " one ")
	iTwo := strings.Index(got, " two ")
	iThree := strings.Index(got, " three ")
	if iOne < 0 || iTwo < 0 || iThree < 0 || !(iOne < iTwo && iTwo < iThree) {
		t.Errorf("segment order not preserved in %q", got)
	}
}

func TestRenderEndsOnContent(t *testing.T) {
	segs := []Segment{plainSegment("a", "tail", "A")}
	got := Render(segs, defaultOptions())
	if !strings.HasSuffix(got, " tail ") {
		t.Errorf("render should end on the last content block, got %q", got)
	}
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		in   string
		want SeparatorStyle
	}{
		{"rounded", SeparatorRounded},
		{"Rounded", SeparatorRounded},
		{"normal", SeparatorNormal},
		{"", SeparatorNormal},
		{"bogus", SeparatorNormal},
	}
	for _, tt := range tests {
		if got := ParseSeparator(tt.in); got != tt.want {
			t.Errorf("ParseSeparator(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSpacing(t *testing.T) {
	tests := []struct {
		in   string
		want Spacing
	}{
		{"none", SpacingNone},
		{"both", SpacingBoth},
		{"widgets-only", SpacingWidgets},
		{"widgets", SpacingWidgets},
		{"", SpacingNone},
		{"bogus", SpacingNone},
	}
	for _, tt := range tests {
		if got := ParseSpacing(tt.in); got != tt.want {
			t.Errorf("ParseSpacing(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
