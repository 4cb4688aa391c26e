package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/planning"
)

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
		for _, sub := range c.Commands() {
			registered[c.Name()+" "+sub.Name()] = true
		}
	}
	for _, name := range []string{
		"work add", "work list", "schedule", "actual", "status", "phases",
		"variance", "timeline", "catalog init", "catalog show", "catalog validate",
		"export", "plan status", "plan action", "plan stage", "telemetry",
	} {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestTimelineCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag string
		def  string
	}{
		{"zoom", ""},
		{"construction", "false"},
		{"today", ""},
		{"interactive", "false"},
	}
	for _, tt := range tests {
		f := timelineCmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("flag %q not registered on timeline", tt.flag)
			continue
		}
		if f.DefValue != tt.def {
			t.Errorf("flag %q default = %q, want %q", tt.flag, f.DefValue, tt.def)
		}
	}
}

func TestWriteExport(t *testing.T) {
	t.Parallel()

	pl := planning.NewPlanning("w1")
	pl.Anchor = civil.MustParse("2026-03-02")
	doc := exportDoc{
		Work:     planning.Work{ID: "w1", Name: "Loja Centro", GoLive: civil.MustParse("2026-03-02")},
		Planning: pl,
	}

	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"go_live_date": "2026-03-02"`, `"work_id": "w1"`}},
		{"yaml", []string{"go_live_date:", "2026-03-02", "work_id: w1"}},
		{"toml", []string{"go_live_date = '2026-03-02'", "work_id = 'w1'"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := writeExport(&buf, tt.format, doc); err != nil {
				t.Fatalf("writeExport: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s output missing %q:\n%s", tt.format, want, buf.String())
				}
			}
		})
	}

	if err := writeExport(&bytes.Buffer{}, "xml", doc); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestEventPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := eventPrinter{w: &buf, workID: "w1"}
	p.print(`{"ts":"2026-01-02T10:00:00Z","kind":"actual_recorded","work":"w1","stage":"contract_signed","data":{"responsible":"ana","end_real":""}}`)
	p.print(`{"ts":"2026-01-02T10:00:01Z","kind":"work_saved","work":"w2"}`)
	p.print(`not json`)

	out := buf.String()
	for _, want := range []string{
		"[2026-01-02 10:00:00] actual_recorded work=w1 stage=contract_signed end_real= responsible=ana",
		"??? not json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "w2") {
		t.Errorf("events of other works should be filtered:\n%s", out)
	}
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("golive %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestEndToEnd(t *testing.T) {
	// Not parallel: drives the shared rootCmd and environment.
	dir := t.TempDir()
	t.Setenv("GOLIVE_DB_DRIVER", "sqlite")
	t.Setenv("GOLIVE_DSN", filepath.Join(dir, "golive.db"))
	t.Setenv("GOLIVE_CATALOG_PATH", filepath.Join(dir, "catalog.toml"))
	t.Setenv("GOLIVE_TELEMETRY_PATH", filepath.Join(dir, "telemetry.jsonl"))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	run(t, "catalog", "init", "--no-color")
	run(t, "work", "add", "w1", "--name", "Loja Centro", "--go-live", "2026-03-02")
	run(t, "actual", "w1", "contract_signed", "--start", "2025-09-01", "--responsible", "ana")

	if out := run(t, "work", "list"); !strings.Contains(out, "Loja Centro") || !strings.Contains(out, "2026-03-02") {
		t.Errorf("work list:\n%s", out)
	}

	out := run(t, "schedule", "w1", "--today", "2025-09-04")
	for _, want := range []string{"Contrato Assinado", "ana", "CloseOut - GoLive", "2026-03-02 → 2026-03-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("schedule output missing %q:\n%s", want, out)
		}
	}

	if out := run(t, "phases", "w1", "--today", "2025-09-04"); !strings.Contains(out, "in-progress") {
		t.Errorf("phases output:\n%s", out)
	}

	if out := run(t, "timeline", "w1", "--zoom", "month", "--today", "2025-09-04"); !strings.Contains(out, "Loja Centro") || !strings.Contains(out, "planned") {
		t.Errorf("timeline output:\n%s", out)
	}

	if out := run(t, "export", "w1", "--format", "json"); !strings.Contains(out, `"responsible": "ana"`) {
		t.Errorf("export output:\n%s", out)
	}

	out = run(t, "telemetry", "--work", "w1")
	for _, want := range []string{"work_saved", "schedule_computed", "actual_recorded"} {
		if !strings.Contains(out, want) {
			t.Errorf("telemetry output missing %q:\n%s", want, out)
		}
	}
}
