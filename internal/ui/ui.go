// Package ui renders golive output for the terminal: status lines on stderr
// through Printer, and schedule, metrics, phase, variance and Gantt reports
// through Renderer.
package ui

import (
	"fmt"
	"os"

	"github.com/papapumpkin/golive/internal/ansi"
	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/schedule"
)

// Printer writes coloured status lines to stderr.
type Printer struct {
	c ansi.Palette
}

// New returns a Printer. Colour is disabled when noColor is true.
func New(noColor bool) *Printer {
	return &Printer{c: ansi.Colors(!noColor)}
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, "%serror: %s%s\n", p.c.Red+p.c.Bold, p.c.Reset, msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(os.Stderr, "%s⚠ %s%s\n", p.c.Yellow+p.c.Bold, msg, p.c.Reset)
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, "%s%s%s\n", p.c.Dim, msg, p.c.Reset)
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(os.Stderr, "%s✓ %s%s\n", p.c.Green+p.c.Bold, msg, p.c.Reset)
}

// WorkSaved confirms a created or updated work.
func (p *Printer) WorkSaved(w planning.Work) {
	goLive := w.GoLive.String()
	if goLive == "" {
		goLive = "no go-live date"
	}
	fmt.Fprintf(os.Stderr, "%s✓ work %s%s %s %s(%s)%s\n", p.c.Green+p.c.Bold, w.ID, p.c.Reset, w.Name, p.c.Dim, goLive, p.c.Reset)
}

// ScheduleReady reports the schedule a planning now holds.
func (p *Printer) ScheduleReady(w planning.Work, pl planning.Planning) {
	if len(pl.Data.Schedule) == 0 {
		p.Warn(fmt.Sprintf("work %s has no go-live date; schedule is empty", w.ID))
		return
	}
	first := pl.Data.Schedule[0]
	fmt.Fprintf(os.Stderr, "%s◆ schedule%s %s — %d stages, %s → %s %s[%s]%s\n",
		p.c.Cyan, p.c.Reset, w.Name, len(pl.Data.Schedule),
		first.PlannedStart, pl.Anchor, p.c.Dim, pl.Status, p.c.Reset)
}

// ActualRecorded confirms an edited stage.
func (p *Printer) ActualRecorded(rec schedule.StageRecord) {
	fmt.Fprintf(os.Stderr, "%s✓ %s%s start=%s end=%s responsible=%s\n",
		p.c.Green+p.c.Bold, rec.Name, p.c.Reset,
		orDash(rec.ActualStart.String()), orDash(rec.ActualEnd.String()), orDash(rec.Responsible))
}

// StatusChanged confirms a planning status change.
func (p *Printer) StatusChanged(workID string, status planning.Status) {
	fmt.Fprintf(os.Stderr, "%s✓ planning %s%s is now %s%s%s\n", p.c.Green+p.c.Bold, workID, p.c.Reset, p.c.Bold, status, p.c.Reset)
}

// ActionPlanAdded confirms a new action plan.
func (p *Printer) ActionPlanAdded(ap planning.ActionPlan) {
	fmt.Fprintf(os.Stderr, "%s+ action plan%s %s on %q: %s → %s %s(%s)%s\n",
		p.c.Yellow+p.c.Bold, p.c.Reset, ap.Type, ap.StageName, ap.Start, ap.End, p.c.Dim, ap.ID, p.c.Reset)
}

// CatalogResult reports the outcome of validating a catalog file.
func (p *Printer) CatalogResult(path string, cat catalog.Catalog, phases []catalog.PhaseDefinition, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s✗ catalog %q%s — %v\n", p.c.Red+p.c.Bold, path, p.c.Reset, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s✓ catalog %q%s — %d stage(s), %d phase(s), %d SLA day(s)\n",
		p.c.Green+p.c.Bold, path, p.c.Reset, cat.Len(), len(phases), cat.TotalSLADays())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
