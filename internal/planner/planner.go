// Package planner runs the planning workflows on top of the schedule core and
// a persistence backend: opening a work's planning (recomputing the schedule
// only when needed), recording actual dates, changing status, attaching
// action plans and building progress reports.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/schedule"
	"github.com/papapumpkin/golive/internal/store"
	"github.com/papapumpkin/golive/internal/telemetry"
)

// ErrUnknownStage is returned when an edit names a stage the planning does not
// contain.
var ErrUnknownStage = errors.New("planner: unknown stage")

// Repository is the persistence the planner needs. *store.Store satisfies it.
type Repository interface {
	PutWork(ctx context.Context, w planning.Work) error
	GetWork(ctx context.Context, id string) (planning.Work, error)
	GetPlanning(ctx context.Context, workID string) (planning.Planning, error)
	UpsertPlanning(ctx context.Context, p planning.Planning) (planning.Planning, error)
}

// Planner coordinates schedule computation and persistence for works.
type Planner struct {
	repo   Repository
	events *telemetry.Emitter

	mu     sync.RWMutex
	cat    catalog.Catalog
	phases []catalog.PhaseDefinition
}

// New returns a Planner using cat and phases for every computation. events may
// be nil.
func New(repo Repository, cat catalog.Catalog, phases []catalog.PhaseDefinition, events *telemetry.Emitter) *Planner {
	return &Planner{repo: repo, cat: cat, phases: phases, events: events}
}

// SetCatalog swaps the catalog and phase definitions, e.g. after the catalog
// file changed on disk. Stored schedules pick the new catalog up on their
// next recompute.
func (p *Planner) SetCatalog(cat catalog.Catalog, phases []catalog.PhaseDefinition) {
	p.mu.Lock()
	p.cat, p.phases = cat, phases
	p.mu.Unlock()
	p.emit(telemetry.Event{Kind: telemetry.KindCatalogReloaded, Data: map[string]int{"stages": cat.Len()}})
}

// Catalog returns the catalog and phases currently in use.
func (p *Planner) Catalog() (catalog.Catalog, []catalog.PhaseDefinition) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cat, p.phases
}

// SaveWork creates or updates a work. A changed go-live date is picked up by
// the next Open.
func (p *Planner) SaveWork(ctx context.Context, w planning.Work) error {
	if err := p.repo.PutWork(ctx, w); err != nil {
		return err
	}
	p.emit(telemetry.Event{Kind: telemetry.KindWorkSaved, WorkID: w.ID, Data: map[string]string{"go_live": w.GoLive.String()}})
	return nil
}

// Open loads the planning of workID, creating a draft when none exists. The
// schedule is recomputed only when it is empty or the work's go-live date no
// longer matches the anchor it was computed for; recorded actuals survive
// the recompute. The planning is persisted when it was created or changed.
func (p *Planner) Open(ctx context.Context, workID string) (planning.Work, planning.Planning, error) {
	w, err := p.repo.GetWork(ctx, workID)
	if err != nil {
		return planning.Work{}, planning.Planning{}, err
	}

	pl, err := p.repo.GetPlanning(ctx, workID)
	created := false
	switch {
	case errors.Is(err, store.ErrNotFound):
		pl = planning.NewPlanning(workID)
		created = true
	case err != nil:
		return w, planning.Planning{}, err
	}

	recomputed := false
	if schedule.NeedsRecompute(pl.Data.Schedule, pl.Anchor, w.GoLive) {
		cat, _ := p.Catalog()
		previous := pl.Anchor
		pl.Data.Schedule = schedule.Compute(w.GoLive, pl.Data.Schedule, cat)
		pl.Anchor = w.GoLive
		recomputed = true
		p.emit(telemetry.Event{
			Kind:   telemetry.KindScheduleComputed,
			WorkID: workID,
			Data: map[string]any{
				"anchor":          w.GoLive.String(),
				"previous_anchor": previous.String(),
				"stages":          len(pl.Data.Schedule),
			},
		})
	} else {
		p.emit(telemetry.Event{Kind: telemetry.KindScheduleKept, WorkID: workID})
	}

	if created || recomputed {
		if pl, err = p.repo.UpsertPlanning(ctx, pl); err != nil {
			return w, pl, err
		}
	}
	return w, pl, nil
}

// Recompute rebuilds the schedule of workID with the current catalog even
// when the anchor did not move, e.g. after the catalog file was edited.
// Recorded actuals are carried over by stage key or name.
func (p *Planner) Recompute(ctx context.Context, workID string) (planning.Planning, error) {
	w, pl, err := p.Open(ctx, workID)
	if err != nil {
		return pl, err
	}
	cat, _ := p.Catalog()
	pl.Data.Schedule = schedule.Compute(w.GoLive, pl.Data.Schedule, cat)
	pl.Anchor = w.GoLive
	if pl, err = p.repo.UpsertPlanning(ctx, pl); err != nil {
		return pl, err
	}
	p.emit(telemetry.Event{
		Kind:   telemetry.KindScheduleComputed,
		WorkID: workID,
		Data:   map[string]any{"anchor": w.GoLive.String(), "stages": len(pl.Data.Schedule), "forced": true},
	})
	return pl, nil
}

// Edit is a partial update of one stage's recorded fields. Nil fields are left
// unchanged; a pointer to the zero date clears that date.
type Edit struct {
	ActualStart *civil.Date
	ActualEnd   *civil.Date
	Responsible *string
	// Construction targets the construction schedule instead of the planning
	// schedule.
	Construction bool
}

// RecordActual applies e to the stage identified by key or name and persists
// the planning. Concurrent edits are not merged; the last write wins.
func (p *Planner) RecordActual(ctx context.Context, workID, stage string, e Edit) (planning.Planning, error) {
	_, pl, err := p.Open(ctx, workID)
	if err != nil {
		return pl, err
	}

	apply := func(r schedule.StageRecord) schedule.StageRecord {
		if e.ActualStart != nil {
			r = r.WithActualStart(*e.ActualStart)
		}
		if e.ActualEnd != nil {
			r = r.WithActualEnd(*e.ActualEnd)
		}
		if e.Responsible != nil {
			r = r.WithResponsible(*e.Responsible)
		}
		return r
	}

	target := &pl.Data.Schedule
	if e.Construction {
		target = &pl.Data.ConstructionSchedule
	}
	updated, ok := target.Update(stage, apply)
	if !ok {
		return pl, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	*target = updated

	if pl, err = p.repo.UpsertPlanning(ctx, pl); err != nil {
		return pl, err
	}

	rec := (*target)[target.Find(stage)]
	p.emit(telemetry.Event{
		Kind:   telemetry.KindActualRecorded,
		WorkID: workID,
		Stage:  stageRef(rec),
		Data: map[string]string{
			"start_real":  rec.ActualStart.String(),
			"end_real":    rec.ActualEnd.String(),
			"responsible": rec.Responsible,
		},
	})
	return pl, nil
}

// SetStatus changes the planning's lifecycle status.
func (p *Planner) SetStatus(ctx context.Context, workID string, status planning.Status) (planning.Planning, error) {
	_, pl, err := p.Open(ctx, workID)
	if err != nil {
		return pl, err
	}
	from := pl.Status
	pl.Status = status
	if pl, err = p.repo.UpsertPlanning(ctx, pl); err != nil {
		return pl, err
	}
	p.emit(telemetry.Event{
		Kind:   telemetry.KindStatusChanged,
		WorkID: workID,
		Data:   map[string]string{"from": string(from), "to": string(status)},
	})
	return pl, nil
}

// AddActionPlan attaches a corrective action to a stage of the planning (or
// construction) schedule.
func (p *Planner) AddActionPlan(ctx context.Context, workID string, typ planning.ActionType, stage string, start civil.Date, slaDays int, description string) (planning.ActionPlan, error) {
	_, pl, err := p.Open(ctx, workID)
	if err != nil {
		return planning.ActionPlan{}, err
	}

	snap := pl.Data.Schedule
	if typ == planning.ActionConstruction {
		snap = pl.Data.ConstructionSchedule
	}
	i := snap.Find(stage)
	if i < 0 {
		return planning.ActionPlan{}, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}

	ap, err := planning.NewActionPlan(typ, snap[i], start, slaDays, description)
	if err != nil {
		return planning.ActionPlan{}, err
	}
	pl.Data.ActionPlans = append(pl.Data.ActionPlans, ap)
	if _, err := p.repo.UpsertPlanning(ctx, pl); err != nil {
		return planning.ActionPlan{}, err
	}

	p.emit(telemetry.Event{
		Kind:   telemetry.KindActionPlanAdded,
		WorkID: workID,
		Stage:  stageRef(snap[i]),
		Data:   map[string]string{"id": ap.ID, "end_date": ap.End.String()},
	})
	return ap, nil
}

// AddConstructionStage appends a free-form stage to the construction
// schedule.
func (p *Planner) AddConstructionStage(ctx context.Context, workID, name string, plannedStart civil.Date, slaDays, slaLimit int) (schedule.StageRecord, error) {
	_, pl, err := p.Open(ctx, workID)
	if err != nil {
		return schedule.StageRecord{}, err
	}

	rec, err := planning.NewConstructionStage(name, plannedStart, slaDays, slaLimit)
	if err != nil {
		return schedule.StageRecord{}, err
	}
	pl.Data.ConstructionSchedule = append(pl.Data.ConstructionSchedule.Clone(), rec)
	if _, err := p.repo.UpsertPlanning(ctx, pl); err != nil {
		return schedule.StageRecord{}, err
	}

	p.emit(telemetry.Event{
		Kind:   telemetry.KindConstructionAdded,
		WorkID: workID,
		Stage:  rec.ID,
		Data:   map[string]any{"name": rec.Name, "sla": rec.SLADays, "sla_limit": rec.SLALimit},
	})
	return rec, nil
}

func (p *Planner) emit(evt telemetry.Event) {
	// Telemetry is best effort; a failed write never fails the operation.
	_ = p.events.Emit(evt)
}

func stageRef(r schedule.StageRecord) string {
	switch {
	case r.Key != "":
		return r.Key
	case r.ID != "":
		return r.ID
	default:
		return r.Name
	}
}
