// Package planning defines the project-side records the schedule core works
// on: works with their go-live date, and the planning document that owns a
// work's schedule, construction schedule and action plans.
package planning

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/schedule"
)

// Sentinel errors.
var (
	ErrUnknownStatus     = errors.New("planning: unknown status")
	ErrUnknownActionType = errors.New("planning: unknown action plan type")
	ErrMissingField      = errors.New("planning: missing required field")
)

// Work is a store opening project.
type Work struct {
	ID       string     `json:"id" yaml:"id" toml:"id"`
	Name     string     `json:"name" yaml:"name" toml:"name"`
	Regional string     `json:"regional,omitempty" yaml:"regional,omitempty" toml:"regional,omitempty"`
	GoLive   civil.Date `json:"go_live_date" yaml:"go_live_date" toml:"go_live_date"`
}

// Status is the lifecycle state of a planning.
type Status string

// Planning statuses.
const (
	StatusDraft    Status = "Rascunho"
	StatusActive   Status = "Ativo"
	StatusDone     Status = "Concluído"
	StatusArchived Status = "Arquivado"
)

var statusAliases = map[string]Status{
	"rascunho":  StatusDraft,
	"draft":     StatusDraft,
	"ativo":     StatusActive,
	"active":    StatusActive,
	"concluído": StatusDone,
	"concluido": StatusDone,
	"done":      StatusDone,
	"arquivado": StatusArchived,
	"archived":  StatusArchived,
}

// ParseStatus accepts the stored status names and their English aliases,
// ignoring case.
func ParseStatus(s string) (Status, error) {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// ActionType says which schedule an action plan refers to.
type ActionType string

// Action plan types.
const (
	ActionPlanning     ActionType = "planning"
	ActionConstruction ActionType = "construction"
)

// ActionPlan is a corrective action attached to one stage.
type ActionPlan struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Type        ActionType `json:"type" yaml:"type" toml:"type"`
	StageID     string     `json:"stage_id" yaml:"stage_id" toml:"stage_id"`
	StageName   string     `json:"stage_name" yaml:"stage_name" toml:"stage_name"`
	Start       civil.Date `json:"start_date" yaml:"start_date" toml:"start_date"`
	SLADays     int        `json:"sla" yaml:"sla" toml:"sla"`
	End         civil.Date `json:"end_date" yaml:"end_date" toml:"end_date"`
	Description string     `json:"description" yaml:"description" toml:"description"`
}

// NewActionPlan builds an action plan for stage, ending slaDays after start.
func NewActionPlan(typ ActionType, stage schedule.StageRecord, start civil.Date, slaDays int, description string) (ActionPlan, error) {
	if typ != ActionPlanning && typ != ActionConstruction {
		return ActionPlan{}, fmt.Errorf("%w: %q", ErrUnknownActionType, typ)
	}
	if start.IsZero() {
		return ActionPlan{}, fmt.Errorf("action plan start: %w", ErrMissingField)
	}
	if slaDays < 0 {
		slaDays = 0
	}
	stageID := stage.ID
	if stageID == "" {
		stageID = stage.Key
	}
	return ActionPlan{
		ID:          uuid.NewString(),
		Type:        typ,
		StageID:     stageID,
		StageName:   stage.Name,
		Start:       start,
		SLADays:     slaDays,
		End:         start.AddDays(slaDays),
		Description: description,
	}, nil
}

// NewConstructionStage builds a free-form construction schedule entry. A
// positive slaLimit enables SLA-ratio colouring on the timeline.
func NewConstructionStage(name string, plannedStart civil.Date, slaDays, slaLimit int) (schedule.StageRecord, error) {
	if strings.TrimSpace(name) == "" {
		return schedule.StageRecord{}, fmt.Errorf("construction stage name: %w", ErrMissingField)
	}
	if slaDays < 0 {
		slaDays = 0
	}
	return schedule.StageRecord{
		ID:           uuid.NewString(),
		Name:         name,
		SLADays:      slaDays,
		PlannedStart: plannedStart,
		PlannedEnd:   plannedStart.AddDays(slaDays),
		SLALimit:     max(0, slaLimit),
	}, nil
}

// Data is the JSON document persisted with a planning.
type Data struct {
	Schedule             schedule.Snapshot `json:"schedule" yaml:"schedule" toml:"schedule"`
	ConstructionSchedule schedule.Snapshot `json:"construction_schedule,omitempty" yaml:"construction_schedule,omitempty" toml:"construction_schedule,omitempty"`
	ActionPlans          []ActionPlan      `json:"action_plans,omitempty" yaml:"action_plans,omitempty" toml:"action_plans,omitempty"`
}

// Planning is the schedule owner for one work.
type Planning struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	WorkID string `json:"work_id" yaml:"work_id" toml:"work_id"`
	Status Status `json:"status" yaml:"status" toml:"status"`
	// Anchor is the go-live date the schedule was last computed for.
	Anchor    civil.Date `json:"anchor" yaml:"anchor" toml:"anchor"`
	Data      Data       `json:"data" yaml:"data" toml:"data"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updated_at" toml:"updated_at"`
}

// NewPlanning returns an empty draft planning for workID.
func NewPlanning(workID string) Planning {
	return Planning{
		ID:     uuid.NewString(),
		WorkID: workID,
		Status: StatusDraft,
	}
}

// ActionPlansFor returns the action plans attached to the stage identified by
// id, key or name.
func (p Planning) ActionPlansFor(stage schedule.StageRecord) []ActionPlan {
	var out []ActionPlan
	for _, ap := range p.Data.ActionPlans {
		if (stage.ID != "" && ap.StageID == stage.ID) ||
			(stage.Key != "" && ap.StageID == stage.Key) ||
			ap.StageName == stage.Name {
			out = append(out, ap)
		}
	}
	return out
}
