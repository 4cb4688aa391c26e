// Package phase rolls the flat stage list up into macro phases for the
// progress report.
//
// Phase members are matched to stages leniently: a member matches the first
// stage, in pipeline order, whose name contains the member name ignoring
// case. Stage names drift slightly between catalog revisions and exact
// matching would orphan them. The cost is that a member that is a substring
// of several stage names always binds to the earliest one.
package phase

import (
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/schedule"
)

// Status is the rollup state of a phase.
type Status string

// Phase statuses.
const (
	NotStarted Status = "not-started"
	InProgress Status = "in-progress"
	Completed  Status = "completed"
)

// Result is the rollup of one phase.
type Result struct {
	Key string `json:"key"`
	// Start is the actual start of the phase's first declared member.
	Start civil.Date `json:"start"`
	// End is the actual end of the phase's last declared member.
	End           civil.Date `json:"end"`
	Status        Status     `json:"status"`
	CompletionPct int        `json:"completion_pct"`
	// RealizedDays is only meaningful when HasRealized is true.
	RealizedDays int  `json:"realized_days"`
	HasRealized  bool `json:"has_realized"`
	// Stages holds the matched stage for each declared member, in member
	// order. Unmatched members are nil.
	Stages []*schedule.StageRecord `json:"-"`
}

// Matched returns the matched stages, skipping unmatched members.
func (r Result) Matched() []schedule.StageRecord {
	var out []schedule.StageRecord
	for _, s := range r.Stages {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Aggregate computes one Result per phase definition, in definition order.
func Aggregate(snap schedule.Snapshot, defs []catalog.PhaseDefinition) []Result {
	folded := make([]string, len(snap))
	fold := cases.Fold()
	for i, r := range snap {
		folded[i] = fold.String(r.Name)
	}

	out := make([]Result, 0, len(defs))
	for _, def := range defs {
		out = append(out, aggregateOne(snap, folded, def))
	}
	return out
}

// Index returns the results keyed by phase key.
func Index(results []Result) map[string]Result {
	m := make(map[string]Result, len(results))
	for _, r := range results {
		m[r.Key] = r
	}
	return m
}

func aggregateOne(snap schedule.Snapshot, folded []string, def catalog.PhaseDefinition) Result {
	res := Result{Key: def.Key, Status: NotStarted}
	if len(def.Members) == 0 {
		return res
	}

	fold := cases.Fold()
	res.Stages = make([]*schedule.StageRecord, len(def.Members))
	completed := 0
	for i, member := range def.Members {
		needle := fold.String(member)
		for j := range snap {
			if strings.Contains(folded[j], needle) {
				rec := snap[j]
				res.Stages[i] = &rec
				break
			}
		}
		if res.Stages[i] != nil && !res.Stages[i].ActualEnd.IsZero() {
			completed++
		}
	}

	if first := res.Stages[0]; first != nil {
		res.Start = first.ActualStart
	}
	if last := res.Stages[len(res.Stages)-1]; last != nil {
		res.End = last.ActualEnd
	}

	res.CompletionPct = int(math.Round(float64(completed) / float64(len(def.Members)) * 100))

	switch {
	case res.Start.IsZero():
		res.Status = NotStarted
	case !res.End.IsZero():
		res.Status = Completed
	default:
		res.Status = InProgress
	}

	if !res.Start.IsZero() && !res.End.IsZero() {
		days := civil.DaysBetween(res.Start, res.End)
		if days < 0 {
			days = -days
		}
		if days == 0 {
			days = 1
		}
		res.RealizedDays = days
		res.HasRealized = true
	}
	return res
}
