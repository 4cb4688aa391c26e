package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	if c.Len() != 27 {
		t.Fatalf("Default().Len() = %d, want 27", c.Len())
	}
	first, last := c.At(0), c.At(c.Len()-1)
	if first.Name != "Contrato Assinado" {
		t.Errorf("first stage = %q", first.Name)
	}
	if last.Name != "CloseOut - GoLive" || last.SLADays != 0 {
		t.Errorf("last stage = %+v, want zero-SLA go-live anchor", last)
	}
	if got := c.TotalSLADays(); got != 154 {
		t.Errorf("TotalSLADays = %d, want 154", got)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		defs []StageDefinition
		want error
	}{
		{
			name: "missing name",
			defs: []StageDefinition{{Key: "a", SLADays: 1}},
			want: ErrMissingField,
		},
		{
			name: "missing key",
			defs: []StageDefinition{{Name: "A", SLADays: 1}},
			want: ErrMissingField,
		},
		{
			name: "negative sla",
			defs: []StageDefinition{{Key: "a", Name: "A", SLADays: -1}},
			want: ErrNegativeSLA,
		},
		{
			name: "duplicate name",
			defs: []StageDefinition{{Key: "a", Name: "A"}, {Key: "b", Name: "A"}},
			want: ErrDuplicateName,
		},
		{
			name: "duplicate key",
			defs: []StageDefinition{{Key: "a", Name: "A"}, {Key: "a", Name: "B"}},
			want: ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.defs...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	defs := []StageDefinition{{Key: "a", Name: "A", SLADays: 1}}
	c, err := New(defs...)
	if err != nil {
		t.Fatal(err)
	}
	defs[0].Name = "changed"
	if c.At(0).Name != "A" {
		t.Error("catalog aliases caller slice")
	}

	stages := c.Stages()
	stages[0].SLADays = 99
	if c.At(0).SLADays != 1 {
		t.Error("Stages() exposes internal slice")
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	c := Default()
	if s, ok := c.Lookup("closeout_golive"); !ok || s.Name != "CloseOut - GoLive" {
		t.Errorf("Lookup by key = %+v, %v", s, ok)
	}
	if s, ok := c.Lookup("Layout aprovado"); !ok || s.Key != "layout_approved" {
		t.Errorf("Lookup by name = %+v, %v", s, ok)
	}
	if _, ok := c.Lookup("nope"); ok {
		t.Error("Lookup of unknown stage succeeded")
	}
}

func TestValidatePhases(t *testing.T) {
	t.Parallel()

	if err := ValidatePhases(DefaultPhases()); err != nil {
		t.Errorf("default phases invalid: %v", err)
	}
	dup := []PhaseDefinition{{Key: "X"}, {Key: "X"}}
	if err := ValidatePhases(dup); !errors.Is(err, ErrDuplicatePhase) {
		t.Errorf("ValidatePhases(dup) = %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	c, phases, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 27 || len(phases) != 7 {
		t.Errorf("got %d stages / %d phases, want defaults", c.Len(), len(phases))
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "nested", "catalog"+ext)
			f := File{
				Stages: []StageDefinition{
					{Key: "a", Name: "A", SLADays: 1},
					{Key: "b", Name: "B", SLADays: 0},
				},
				Phases: []PhaseDefinition{{Key: "All", Members: []string{"A", "B"}}},
			}
			if err := Save(path, f); err != nil {
				t.Fatalf("Save: %v", err)
			}
			c, phases, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if c.Len() != 2 || c.At(1).Key != "b" {
				t.Errorf("stages round-trip = %+v", c.Stages())
			}
			if len(phases) != 1 || len(phases[0].Members) != 2 {
				t.Errorf("phases round-trip = %+v", phases)
			}
		})
	}
}

func TestLoad_TOMLWithoutPhasesUsesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `
[[stage]]
key = "a"
name = "A"
sla_days = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, phases, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 || c.At(0).SLADays != 3 {
		t.Errorf("stages = %+v", c.Stages())
	}
	if len(phases) != len(DefaultPhases()) {
		t.Errorf("phases = %d, want defaults", len(phases))
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[stage]\nname="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("Load(bad toml) = %v", err)
	}

	dup := filepath.Join(dir, "dup.yaml")
	content := "stages:\n  - {key: a, name: A}\n  - {key: b, name: A}\n"
	if err := os.WriteFile(dup, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(dup); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Load(dup) = %v, want ErrDuplicateName", err)
	}

	txt := filepath.Join(dir, "catalog.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(txt); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(txt) = %v, want ErrUnknownFormat", err)
	}
}

func TestWatcher_EmitsReloadOnWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := Save(path, DefaultFile()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	f := File{Stages: []StageDefinition{{Key: "only", Name: "Only", SLADays: 2}}}
	if err := Save(path, f); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Catalog.Len() != 1 || r.Catalog.At(0).Key != "only" {
			t.Errorf("reloaded catalog = %+v", r.Catalog.Stages())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_StopWithoutRunningLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name  string
		path  string
		start bool
	}{
		{"never started", filepath.Join(dir, "catalog.toml"), false},
		{"start failed", filepath.Join(dir, "missing", "catalog.toml"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, err := NewWatcher(tt.path)
			if err != nil {
				t.Fatalf("NewWatcher: %v", err)
			}
			if tt.start {
				if err := w.Start(); err == nil {
					t.Fatal("Start on a missing directory should fail")
				}
			}

			stopped := make(chan struct{})
			go func() {
				w.Stop()
				w.Stop()
				close(stopped)
			}()
			select {
			case <-stopped:
			case <-time.After(5 * time.Second):
				t.Fatal("Stop blocked")
			}
			if _, ok := <-w.Reloads; ok {
				t.Error("Reloads should be closed after Stop")
			}
		})
	}
}
