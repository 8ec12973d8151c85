package widget

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/registry"
)

func TestInstantiateUnknownWidget(t *testing.T) {
	reg := registry.New(nil)
	store := cache.NewStore(t.TempDir())

	if _, err := Instantiate(Entry{Name: "no-such-widget"}, reg, store); err == nil {
		t.Error("Instantiate of unknown widget: expected error")
	}
}

func TestInstantiateBuiltins(t *testing.T) {
	reg := registry.New(nil)
	store := cache.NewStore(t.TempDir())

	for _, name := range []string{"datetime", "hostname", "loadavg", "battery", "git"} {
		w, err := Instantiate(Entry{Name: name}, reg, store)
		if err != nil {
			t.Fatalf("Instantiate(%s): %v", name, err)
		}
		if w.Name() != name {
			t.Errorf("Name: got %q, want %q", w.Name(), name)
		}
	}
}

func TestDateTimeFormat(t *testing.T) {
	reg := registry.New(registry.MapOverrides{"datetime.format": "2006"})
	w := newDateTime(reg)

	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	want := time.Now().Format("2006")
	if got != want {
		t.Errorf("Produce: got %q, want %q", got, want)
	}
}

func TestHostnameShort(t *testing.T) {
	reg := registry.New(nil)
	w := newHostname(reg)

	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got == "" {
		t.Fatal("Produce: got empty hostname")
	}
	if strings.ContainsRune(got, '.') {
		t.Errorf("short hostname contains a domain part: %q", got)
	}
}

func TestLoadavgReadsFirstField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loadavg")
	if err := os.WriteFile(path, []byte("1.42 0.80 0.60 2/345 6789\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := registry.New(nil)
	w := newLoadavg(reg, Conditional)
	w.path = path

	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got != "1.42" {
		t.Errorf("Produce: got %q, want %q", got, "1.42")
	}
}

func TestBatteryMissingSysfsSuppresses(t *testing.T) {
	reg := registry.New(nil)
	w := newBattery(reg, Conditional)
	w.path = filepath.Join(t.TempDir(), "no-battery")

	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got != "" {
		t.Errorf("Produce without a battery: got %q, want empty", got)
	}
}

func TestBatteryReadsCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capacity")
	if err := os.WriteFile(path, []byte("87\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := registry.New(nil)
	w := newBattery(reg, Conditional)
	w.path = path

	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got != "87%" {
		t.Errorf("Produce: got %q, want %q", got, "87%")
	}
}

func TestExternalLiteralContent(t *testing.T) {
	reg := registry.New(nil)
	store := cache.NewStore(t.TempDir())
	e := Entry{Name: "motd", External: &ExternalSpec{Content: "hello there"}}

	w := newExternal(e, reg, store)
	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got != "hello there" {
		t.Errorf("Produce: got %q, want %q", got, "hello there")
	}
}

func TestExternalCommandCached(t *testing.T) {
	reg := registry.New(nil)
	store := cache.NewStore(t.TempDir())

	// The command appends to a file so we can count invocations.
	marker := filepath.Join(t.TempDir(), "calls")
	cmd := "`echo run >> " + marker + " && echo output`"
	e := Entry{Name: "counter", External: &ExternalSpec{Content: cmd, TTL: time.Minute}}
	w := newExternal(e, reg, store)

	for i := 0; i < 2; i++ {
		got, err := w.Produce(context.Background())
		if err != nil {
			t.Fatalf("Produce: %v", err)
		}
		if got != "output" {
			t.Errorf("Produce: got %q, want %q", got, "output")
		}
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if calls := strings.Count(string(data), "run"); calls != 1 {
		t.Errorf("command invocations within TTL: got %d, want 1", calls)
	}
}

func TestExternalVisibilityCommand(t *testing.T) {
	reg := registry.New(nil)
	store := cache.NewStore(t.TempDir())
	e := Entry{Name: "gated", External: &ExternalSpec{
		Content:           "shown",
		VisibilityCommand: "false",
	}}

	w := newExternal(e, reg, store)
	got, err := w.Produce(context.Background())
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got != "" {
		t.Errorf("Produce with failing visibility command: got %q, want empty", got)
	}
}
