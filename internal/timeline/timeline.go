// Package timeline lays a schedule out as Gantt geometry: a padded date
// domain, header ticks and one row of planned and actual bars per stage,
// measured in pixels for a chosen zoom granularity. It produces numbers only;
// rendering belongs to the caller.
package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/schedule"
	"github.com/papapumpkin/golive/internal/variance"
)

// ErrNoValidDates is returned by Layout when no stage carries any date.
var ErrNoValidDates = errors.New("timeline: no valid dates")

// ErrUnknownGranularity is returned by ParseGranularity.
var ErrUnknownGranularity = errors.New("timeline: unknown granularity")

// Granularity is the zoom level of a timeline.
type Granularity string

// Zoom levels.
const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// ParseGranularity parses a zoom level name, ignoring case and surrounding
// whitespace.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Day, Week, Month:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
}

// PixelsPerDay returns the horizontal scale of g. Unknown values fall back to
// the day scale.
func (g Granularity) PixelsPerDay() int {
	switch g {
	case Week:
		return 10
	case Month:
		return 4
	default:
		return 40
	}
}

// pads returns how many days the domain extends before the earliest and after
// the latest date.
func (g Granularity) pads() (before, after int) {
	if g == Month {
		return 30, 60
	}
	return 7, 14
}

func (g Granularity) snap(d civil.Date) civil.Date {
	switch g {
	case Week:
		return d.StartOfWeek()
	case Month:
		return d.StartOfMonth()
	default:
		return d
	}
}

func (g Granularity) step(d civil.Date) civil.Date {
	switch g {
	case Week:
		return d.AddDays(7)
	case Month:
		return d.AddMonths(1)
	default:
		return d.AddDays(1)
	}
}

// Kind selects how actual bars are coloured.
type Kind int

const (
	// KindPlanning colours actual bars by comparing actual and planned end.
	KindPlanning Kind = iota
	// KindConstruction colours stages that carry an SLA limit by how much of
	// the limit has elapsed.
	KindConstruction
)

// Color classifies an actual bar.
type Color string

// Bar colours.
const (
	ColorNone       Color = "none"
	ColorInProgress Color = "in-progress"
	ColorOnTime     Color = "on-time"
	ColorAtRisk     Color = "at-risk"
	ColorLate       Color = "late"
)

// Options tune a layout.
type Options struct {
	// Today closes open-ended actual bars and feeds SLA ratios. It must be
	// set by the caller; layouts never read the wall clock.
	Today civil.Date
	Kind  Kind
}

// Tick is one header tick.
type Tick struct {
	Date     civil.Date `json:"date"`
	OffsetPx int        `json:"offset_px"`
}

// Row is the bar geometry of one stage.
type Row struct {
	Key             string `json:"key,omitempty"`
	Name            string `json:"name"`
	HasPlanned      bool   `json:"has_planned"`
	PlannedOffsetPx int    `json:"planned_offset_px"`
	PlannedWidthPx  int    `json:"planned_width_px"`
	HasActual       bool   `json:"has_actual"`
	ActualOffsetPx  int    `json:"actual_offset_px"`
	ActualWidthPx   int    `json:"actual_width_px"`
	Color           Color  `json:"color"`
}

// Geometry is a complete timeline layout.
type Geometry struct {
	Granularity  Granularity `json:"granularity"`
	DomainStart  civil.Date  `json:"domain_start"`
	DomainEnd    civil.Date  `json:"domain_end"`
	PixelsPerDay int         `json:"pixels_per_day"`
	Ticks        []Tick      `json:"ticks"`
	Rows         []Row       `json:"rows"`
	// TotalDays counts the domain inclusively.
	TotalDays int `json:"total_days"`
	WidthPx   int `json:"width_px"`
}

// Layout computes the geometry of snap at granularity gran. The domain spans
// the stage dates only; opts.Today closes open actual bars, which may run past
// the domain end. It returns ErrNoValidDates when the snapshot carries no date
// at all. Every stage gets a row, with or without bars.
func Layout(snap schedule.Snapshot, gran Granularity, opts Options) (Geometry, error) {
	dates := snap.Dates()
	if len(dates) == 0 {
		return Geometry{}, ErrNoValidDates
	}

	before, after := gran.pads()
	g := Geometry{
		Granularity:  gran,
		DomainStart:  civil.Min(dates...).AddDays(-before),
		DomainEnd:    civil.Max(dates...).AddDays(after),
		PixelsPerDay: gran.PixelsPerDay(),
	}
	g.TotalDays = civil.DaysBetween(g.DomainStart, g.DomainEnd) + 1
	g.WidthPx = g.TotalDays * g.PixelsPerDay

	for t := gran.snap(g.DomainStart); !t.After(g.DomainEnd); t = gran.step(t) {
		g.Ticks = append(g.Ticks, Tick{Date: t, OffsetPx: g.offset(t)})
	}

	g.Rows = make([]Row, 0, len(snap))
	for _, r := range snap {
		g.Rows = append(g.Rows, g.row(r, opts))
	}
	return g, nil
}

func (g Geometry) offset(d civil.Date) int {
	return civil.DaysBetween(g.DomainStart, d) * g.PixelsPerDay
}

func (g Geometry) width(start, end civil.Date) int {
	return max(1, (civil.DaysBetween(start, end)+1)*g.PixelsPerDay)
}

func (g Geometry) row(r schedule.StageRecord, opts Options) Row {
	row := Row{Key: r.Key, Name: r.Name, Color: ColorNone}

	if !r.PlannedStart.IsZero() {
		end := r.PlannedEnd
		if end.IsZero() {
			end = r.PlannedStart
		}
		row.HasPlanned = true
		row.PlannedOffsetPx = g.offset(r.PlannedStart)
		row.PlannedWidthPx = g.width(r.PlannedStart, end)
	}

	if r.ActualStart.IsZero() {
		return row
	}
	end := r.ActualEnd
	if end.IsZero() {
		end = opts.Today
	}
	if end.IsZero() {
		end = r.ActualStart
	}
	row.HasActual = true
	row.ActualOffsetPx = g.offset(r.ActualStart)
	row.ActualWidthPx = g.width(r.ActualStart, end)
	row.Color = BarColor(r, opts)
	return row
}

// BarColor classifies the actual bar of r. A closed bar is compared with the
// planned end, or the planned start when the stage has no planned end.
func BarColor(r schedule.StageRecord, opts Options) Color {
	if r.ActualStart.IsZero() {
		return ColorNone
	}
	if opts.Kind == KindConstruction && r.SLALimit > 0 {
		return slaColor(r, opts.Today)
	}
	if r.ActualEnd.IsZero() {
		return ColorInProgress
	}
	planned := r.PlannedEnd
	if planned.IsZero() {
		planned = r.PlannedStart
	}
	v, ok := variance.Classify(planned, r.ActualEnd)
	if !ok || v.Label.Sign() > 0 {
		return ColorLate
	}
	return ColorOnTime
}

func slaColor(r schedule.StageRecord, today civil.Date) Color {
	elapsed, _ := r.RealDuration(today)
	if r.ActualEnd.IsZero() && today.IsZero() {
		return ColorInProgress
	}
	ratio := float64(elapsed) / float64(r.SLALimit)
	switch {
	case ratio < 0.5:
		return ColorOnTime
	case ratio < 0.9:
		return ColorAtRisk
	default:
		return ColorLate
	}
}
