package ui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/timeline"
)

// CellPx is the number of timeline pixels drawn as one terminal column.
const CellPx = 20

// Gantt glyphs.
const (
	GlyphPlanned = "░"
	GlyphActual  = "█"
	GlyphToday   = "▼"
)

// LabelWidth is the width of the stage-name column of a Gantt chart.
const LabelWidth = 30

// Columns returns how many terminal columns a geometry spans.
func Columns(g timeline.Geometry) int {
	return (g.WidthPx + CellPx - 1) / CellPx
}

// CellSpan converts a bar in pixels to an inclusive range of columns.
func CellSpan(offsetPx, widthPx int) (from, to int) {
	from = offsetPx / CellPx
	to = (offsetPx + widthPx - 1) / CellPx
	return from, max(from, to)
}

// TodayColumn returns the column of today, or -1 when it falls outside the
// domain.
func TodayColumn(g timeline.Geometry, today civil.Date) int {
	if today.IsZero() || today.Before(g.DomainStart) || today.After(g.DomainEnd) {
		return -1
	}
	return civil.DaysBetween(g.DomainStart, today) * g.PixelsPerDay / CellPx
}

// TickLabel formats a header tick for the granularity of g.
func TickLabel(g timeline.Geometry, d civil.Date) string {
	if g.Granularity == timeline.Month {
		return d.Format("01/2006")
	}
	return d.Format("02/01")
}

// HeaderLine lays tick labels out on one line of width columns, skipping
// labels that would overlap their predecessor.
func HeaderLine(g timeline.Geometry, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for _, tk := range g.Ticks {
		col := tk.OffsetPx / CellPx
		if tk.OffsetPx < 0 {
			col = 0
		}
		label := []rune(TickLabel(g, tk.Date))
		if col < next || col+len(label) > width {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return string(line)
}

// Gantt prints a text Gantt chart of g: one line per stage with the planned
// bar in light shade and the actual bar overlaid in a colour matching its
// classification.
func (r *Renderer) Gantt(g *timeline.Geometry, today civil.Date) {
	if g == nil {
		fmt.Fprintf(r.w, "%s(no dates to chart)%s\n", r.c.Dim, r.c.Reset)
		return
	}
	width := Columns(*g)
	blank := strings.Repeat(" ", LabelWidth)

	fmt.Fprintf(r.w, "%s%s │%s%s\n", r.c.Bold, blank, HeaderLine(*g, width), r.c.Reset)
	if col := TodayColumn(*g, today); col >= 0 {
		fmt.Fprintf(r.w, "%s │%s%s\n", blank, strings.Repeat(" ", col), r.c.Paint(r.c.Magenta, GlyphToday))
	}

	for _, row := range g.Rows {
		cells := make([]string, width)
		for i := range cells {
			cells[i] = " "
		}
		if row.HasPlanned {
			from, to := CellSpan(row.PlannedOffsetPx, row.PlannedWidthPx)
			for i := max(0, from); i <= to && i < width; i++ {
				cells[i] = r.c.Paint(r.c.Dim, GlyphPlanned)
			}
		}
		if row.HasActual {
			from, to := CellSpan(row.ActualOffsetPx, row.ActualWidthPx)
			for i := max(0, from); i <= to && i < width; i++ {
				cells[i] = r.c.Paint(r.barColor(row.Color), GlyphActual)
			}
		}
		fmt.Fprintf(r.w, "%s │%s\n", pad(truncate(row.Name, LabelWidth), LabelWidth), strings.Join(cells, ""))
	}

	fmt.Fprintf(r.w, "\n%s%s planned  %s actual: %s %s %s %s%s\n", r.c.Dim,
		GlyphPlanned, GlyphActual,
		r.c.Paint(r.barColor(timeline.ColorOnTime), string(timeline.ColorOnTime)),
		r.c.Paint(r.barColor(timeline.ColorInProgress), string(timeline.ColorInProgress)),
		r.c.Paint(r.barColor(timeline.ColorAtRisk), string(timeline.ColorAtRisk)),
		r.c.Paint(r.barColor(timeline.ColorLate), string(timeline.ColorLate)),
		r.c.Reset)
}

func (r *Renderer) barColor(c timeline.Color) string {
	switch c {
	case timeline.ColorOnTime:
		return r.c.Green
	case timeline.ColorInProgress:
		return r.c.Blue
	case timeline.ColorAtRisk:
		return r.c.Yellow
	case timeline.ColorLate:
		return r.c.Red
	default:
		return ""
	}
}
