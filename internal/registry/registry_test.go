package registry

import "testing"

func TestResolvePrecedence(t *testing.T) {
	overrides := MapOverrides{"cpu.icon": "X"}
	r := New(overrides)
	r.Declare("cpu", "icon", Icon, "C", "icon glyph")
	r.Declare("cpu", "format", String, "percent", "output format")
	r.SetFallback("cpu", "legacy", "old-value")

	tests := []struct {
		name   string
		widget string
		option string
		want   string
	}{
		{"override wins over default", "cpu", "icon", "X"},
		{"declared default", "cpu", "format", "percent"},
		{"global fallback", "cpu", "legacy", "old-value"},
		{"nothing anywhere", "cpu", "unknown", ""},
		{"unknown widget", "ghost", "icon", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.widget, tt.option); got != tt.want {
				t.Errorf("Resolve(%s, %s): got %q, want %q", tt.widget, tt.option, got, tt.want)
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	overrides := MapOverrides{"battery.warning_threshold": "50"}
	r := New(overrides)
	r.Declare("battery", "warning_threshold", Number, "30", "warning level")

	first := r.Resolve("battery", "warning_threshold")
	if first != "50" {
		t.Fatalf("first Resolve: got %q, want %q", first, "50")
	}

	// The external configuration changes mid-process; the memoized value
	// must not move.
	overrides["battery.warning_threshold"] = "99"
	second := r.Resolve("battery", "warning_threshold")
	if second != first {
		t.Errorf("second Resolve: got %q, want memoized %q", second, first)
	}
}

func TestResolveMemoizesMiss(t *testing.T) {
	overrides := MapOverrides{}
	r := New(overrides)

	if got := r.Resolve("git", "branch_icon"); got != "" {
		t.Fatalf("initial Resolve: got %q, want empty", got)
	}

	// Even a resolved empty value is pinned for the rest of the process.
	overrides["git.branch_icon"] = "B"
	if got := r.Resolve("git", "branch_icon"); got != "" {
		t.Errorf("Resolve after external change: got %q, want memoized empty", got)
	}
}

func TestDeclareOverwrites(t *testing.T) {
	r := New(nil)
	r.Declare("disk", "path", Path, "/", "mount to watch")
	r.Declare("disk", "path", Path, "/home", "mount to watch")

	if got := r.Resolve("disk", "path"); got != "/home" {
		t.Errorf("Resolve after re-declare: got %q, want %q", got, "/home")
	}
}

func TestNumberValidation(t *testing.T) {
	tests := []struct {
		name     string
		override string
		want     string
	}{
		{"valid integer", "85", "85"},
		{"negative integer", "-3", "-3"},
		{"padded integer", " 42 ", "42"},
		{"float reverts to default", "8.5", "70"},
		{"garbage reverts to default", "lots", "70"},
		{"empty reverts to default", "", "70"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(MapOverrides{"cpu.warning_threshold": tt.override})
			r.Declare("cpu", "warning_threshold", Number, "70", "warning level")
			if got := r.Resolve("cpu", "warning_threshold"); got != tt.want {
				t.Errorf("Resolve: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoolNormalization(t *testing.T) {
	tests := []struct {
		override string
		want     string
	}{
		{"true", "true"},
		{"1", "true"},
		{"yes", "true"},
		{"ON", "true"},
		{"false", "false"},
		{"0", "false"},
		{"no", "false"},
		{"off", "false"},
		{"maybe", "false"}, // reverts to declared default
	}
	for _, tt := range tests {
		t.Run(tt.override, func(t *testing.T) {
			r := New(MapOverrides{"net.show_only_warning": tt.override})
			r.Declare("net", "show_only_warning", Bool, "false", "hide unless exceeded")
			if got := r.Resolve("net", "show_only_warning"); got != tt.want {
				t.Errorf("Resolve(%q): got %q, want %q", tt.override, got, tt.want)
			}
		})
	}
}

func TestColorPassesThroughUnvalidated(t *testing.T) {
	r := New(MapOverrides{"cpu.accent_color": "definitely not a color"})
	r.Declare("cpu", "accent_color", Color, "secondary", "accent token")

	if got := r.Resolve("cpu", "accent_color"); got != "definitely not a color" {
		t.Errorf("Resolve: got %q, want free-form passthrough", got)
	}
}

func TestClearCache(t *testing.T) {
	overrides := MapOverrides{"cpu.icon": "A", "mem.icon": "M"}
	r := New(overrides)

	r.Resolve("cpu", "icon")
	r.Resolve("mem", "icon")

	overrides["cpu.icon"] = "B"
	overrides["mem.icon"] = "N"

	r.ClearCache("cpu")
	if got := r.Resolve("cpu", "icon"); got != "B" {
		t.Errorf("Resolve(cpu) after ClearCache: got %q, want %q", got, "B")
	}
	if got := r.Resolve("mem", "icon"); got != "M" {
		t.Errorf("Resolve(mem) untouched by per-widget clear: got %q, want %q", got, "M")
	}

	r.ClearCache("")
	if got := r.Resolve("mem", "icon"); got != "N" {
		t.Errorf("Resolve(mem) after full clear: got %q, want %q", got, "N")
	}
}

func TestDescriptors(t *testing.T) {
	r := New(nil)
	r.Declare("cpu", "icon", Icon, "C", "icon")
	r.Declare("cpu", "format", String, "percent", "format")
	r.Declare("mem", "icon", Icon, "M", "icon")

	all := r.Descriptors("")
	if len(all) != 3 {
		t.Fatalf("Descriptors(\"\"): got %d, want 3", len(all))
	}
	// Sorted by widget then option.
	if all[0].Widget != "cpu" || all[0].Name != "format" {
		t.Errorf("first descriptor: got %s.%s, want cpu.format", all[0].Widget, all[0].Name)
	}

	cpu := r.Descriptors("cpu")
	if len(cpu) != 2 {
		t.Errorf("Descriptors(cpu): got %d, want 2", len(cpu))
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{String, "string"},
		{Number, "number"},
		{Bool, "bool"},
		{Color, "color"},
		{Icon, "icon"},
		{Key, "key"},
		{Path, "path"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String(): got %q, want %q", tt.kind, got, tt.want)
		}
	}
}
