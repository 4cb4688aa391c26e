package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/golive/internal/ansi"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/metrics"
	"github.com/papapumpkin/golive/internal/phase"
	"github.com/papapumpkin/golive/internal/planner"
	"github.com/papapumpkin/golive/internal/schedule"
	"github.com/papapumpkin/golive/internal/variance"
)

// Renderer writes reports to an output stream, usually stdout.
type Renderer struct {
	w io.Writer
	c ansi.Palette
}

// NewRenderer returns a Renderer writing to w. Colour is disabled when
// noColor is true.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return &Renderer{w: w, c: ansi.Colors(!noColor)}
}

// column is one table column: a header and a fixed display width.
type column struct {
	title string
	width int
}

// pad right-pads s to width display cells. Escape codes do not count towards
// the width.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens plain text s to at most width cells, ending with an
// ellipsis when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func (r *Renderer) header(cols []column) {
	var b strings.Builder
	for _, col := range cols {
		b.WriteString(pad(col.title, col.width))
		b.WriteString("  ")
	}
	fmt.Fprintf(r.w, "%s%s%s\n", r.c.Bold, strings.TrimRight(b.String(), " "), r.c.Reset)
}

func (r *Renderer) row(cols []column, cells ...string) {
	var b strings.Builder
	for i, col := range cols {
		b.WriteString(pad(cells[i], col.width))
		b.WriteString("  ")
	}
	fmt.Fprintln(r.w, strings.TrimRight(b.String(), " "))
}

// Schedule prints one line per stage with planned and actual dates. today
// feeds the realised duration of stages still in progress.
func (r *Renderer) Schedule(snap schedule.Snapshot, today civil.Date) {
	if len(snap) == 0 {
		fmt.Fprintf(r.w, "%s(empty schedule: no go-live date)%s\n", r.c.Dim, r.c.Reset)
		return
	}
	cols := []column{
		{"#", 2}, {"STAGE", stageWidth}, {"SLA", 3},
		{"PLANNED", 23}, {"ACTUAL", 23}, {"DAYS", 4}, {"RESPONSIBLE", 16},
	}
	r.header(cols)
	for i, rec := range snap {
		days := "-"
		if n, ok := rec.RealDuration(today); ok {
			days = fmt.Sprintf("%d", n)
		}
		r.row(cols,
			fmt.Sprintf("%d", i+1),
			r.stageName(rec),
			fmt.Sprintf("%d", rec.SLADays),
			dateRange(rec.PlannedStart, rec.PlannedEnd),
			dateRange(rec.ActualStart, rec.ActualEnd),
			days,
			orDash(rec.Responsible),
		)
	}
}

const stageWidth = 42

func (r *Renderer) stageName(rec schedule.StageRecord) string {
	name := truncate(rec.Name, stageWidth)
	switch {
	case rec.Completed():
		return r.c.Paint(r.c.Green, name)
	case rec.InProgress():
		return r.c.Paint(r.c.Blue, name)
	default:
		return name
	}
}

func dateRange(start, end civil.Date) string {
	return orDash(start.String()) + " → " + orDash(end.String())
}

// Metrics prints the progress summary of a planning and a countdown to
// goLive relative to today.
func (r *Renderer) Metrics(m *metrics.Metrics, goLive, today civil.Date) {
	if m == nil {
		fmt.Fprintf(r.w, "%s(no metrics: schedule is empty)%s\n", r.c.Dim, r.c.Reset)
		return
	}
	lines := [][2]string{
		{"Last completed", m.LastCompleted},
		{"In progress", m.InProgress},
		{"Next planned", m.NextPlanned},
		{"Planned span", fmt.Sprintf("%d days", m.TotalPlannedDays)},
		{"Real span", fmt.Sprintf("%d days", m.TotalRealDays)},
	}
	if !goLive.IsZero() && !today.IsZero() {
		lines = append(lines, [2]string{"Go-live", goLive.String() + " (" + humanize.RelTime(goLive.Time(), today.Time(), "ago", "from now") + ")"})
	}
	for _, l := range lines {
		fmt.Fprintf(r.w, "%s%s%s %s\n", r.c.Bold, pad(l[0]+":", 16), r.c.Reset, l[1])
	}
	if len(m.Overruns) > 0 {
		fmt.Fprintf(r.w, "%s%s%s %s\n", r.c.Red+r.c.Bold, pad("Overruns:", 16), r.c.Reset, strings.Join(m.Overruns, ", "))
	}
}

// Phases prints the macro-phase rollup.
func (r *Renderer) Phases(results []phase.Result) {
	cols := []column{{"PHASE", 18}, {"STATUS", 11}, {"DONE", 4}, {"PROGRESS", 20}, {"START", 10}, {"END", 10}, {"DAYS", 4}}
	r.header(cols)
	for _, res := range results {
		days := "-"
		if res.HasRealized {
			days = fmt.Sprintf("%d", res.RealizedDays)
		}
		r.row(cols,
			truncate(res.Key, 18),
			r.phaseStatus(res.Status),
			fmt.Sprintf("%d%%", res.CompletionPct),
			progressBar(res.CompletionPct, 20),
			orDash(res.Start.String()),
			orDash(res.End.String()),
			days,
		)
	}
}

func (r *Renderer) phaseStatus(s phase.Status) string {
	switch s {
	case phase.Completed:
		return r.c.Paint(r.c.Green, string(s))
	case phase.InProgress:
		return r.c.Paint(r.c.Blue, string(s))
	default:
		return r.c.Paint(r.c.Dim, string(s))
	}
}

func progressBar(pct, width int) string {
	filled := min(width, max(0, pct*width/100))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Variances prints start and end deltas of every stage that has at least one
// actual date.
func (r *Renderer) Variances(vs []planner.StageVariance) {
	cols := []column{{"STAGE", stageWidth}, {"START", 18}, {"END", 18}}
	r.header(cols)
	shown := 0
	for _, sv := range vs {
		if sv.Start == nil && sv.End == nil {
			continue
		}
		shown++
		r.row(cols, truncate(sv.Stage.Name, stageWidth), r.variance(sv.Start), r.variance(sv.End))
	}
	if shown == 0 {
		fmt.Fprintf(r.w, "%s(no actual dates recorded)%s\n", r.c.Dim, r.c.Reset)
	}
}

func (r *Renderer) variance(v *variance.Variance) string {
	if v == nil {
		return "-"
	}
	switch v.Label {
	case variance.Late:
		return r.c.Paint(r.c.Red, v.String())
	case variance.Early:
		return r.c.Paint(r.c.Green, v.String())
	default:
		return v.String()
	}
}
