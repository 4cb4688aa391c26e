package planner

import (
	"context"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/metrics"
	"github.com/papapumpkin/golive/internal/phase"
	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/schedule"
	"github.com/papapumpkin/golive/internal/timeline"
	"github.com/papapumpkin/golive/internal/variance"
)

// ReportOptions select the timeline view of a report.
type ReportOptions struct {
	Granularity timeline.Granularity
	Kind        timeline.Kind
	// Today closes open actual bars and is the reference for countdowns.
	Today civil.Date
}

// StageVariance pairs a stage with its start and end variance. A nil
// variance means one of the two dates is missing.
type StageVariance struct {
	Stage schedule.StageRecord
	Start *variance.Variance
	End   *variance.Variance
}

// Report is everything the status views show for one work.
type Report struct {
	Work     planning.Work
	Planning planning.Planning
	// Metrics is nil when the schedule is empty.
	Metrics   *metrics.Metrics
	Phases    []phase.Result
	Variances []StageVariance
	// Timeline is nil when the selected schedule carries no dates.
	Timeline *timeline.Geometry
	Today    civil.Date
}

// Snapshot returns the schedule the timeline of r was laid out from.
func (r Report) Snapshot(kind timeline.Kind) schedule.Snapshot {
	if kind == timeline.KindConstruction {
		return r.Planning.Data.ConstructionSchedule
	}
	return r.Planning.Data.Schedule
}

// Report opens the planning of workID and derives metrics, phase rollups,
// variances and timeline geometry from it.
func (p *Planner) Report(ctx context.Context, workID string, opts ReportOptions) (Report, error) {
	w, pl, err := p.Open(ctx, workID)
	if err != nil {
		return Report{}, err
	}
	_, phases := p.Catalog()
	return Build(w, pl, phases, opts), nil
}

// Build derives a report from an already loaded planning without touching
// storage.
func Build(w planning.Work, pl planning.Planning, phases []catalog.PhaseDefinition, opts ReportOptions) Report {
	rep := Report{
		Work:     w,
		Planning: pl,
		Metrics:  metrics.Compute(pl.Data.Schedule),
		Phases:   phase.Aggregate(pl.Data.Schedule, phases),
		Today:    opts.Today,
	}

	for _, rec := range pl.Data.Schedule {
		sv := StageVariance{Stage: rec}
		if v, ok := variance.StartVariance(rec); ok {
			sv.Start = &v
		}
		if v, ok := variance.EndVariance(rec); ok {
			sv.End = &v
		}
		rep.Variances = append(rep.Variances, sv)
	}

	gran := opts.Granularity
	if gran == "" {
		gran = timeline.Week
	}
	// The only layout failure is ErrNoValidDates, reported as a nil timeline.
	if geom, err := timeline.Layout(rep.Snapshot(opts.Kind), gran, timeline.Options{Today: opts.Today, Kind: opts.Kind}); err == nil {
		rep.Timeline = &geom
	}
	return rep
}
