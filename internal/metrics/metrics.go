// Package metrics derives the compact progress summary shown for a project:
// where the pipeline stands and how long the plan and the real execution
// span.
package metrics

import (
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/schedule"
)

// None is reported in place of a stage name when no stage qualifies.
const None = "-"

// Metrics summarises one schedule snapshot.
type Metrics struct {
	// LastCompleted is the last stage in pipeline order with both actual
	// dates set. It is not necessarily the most recently finished one.
	LastCompleted string `json:"last_completed"`
	// InProgress is the first stage that started but has not finished.
	InProgress string `json:"in_progress"`
	// NextPlanned is the first stage with no actual start.
	NextPlanned string `json:"next_planned"`
	// TotalPlannedDays spans the first stage's planned start to the last
	// stage's planned end.
	TotalPlannedDays int `json:"total_planned_days"`
	// TotalRealDays spans the earliest actual start to the latest actual end.
	TotalRealDays int `json:"total_real_days"`
	// Overruns lists the stages that finished after their planned end.
	Overruns []string `json:"overruns,omitempty"`
}

// Compute scans snap once in pipeline order. It returns nil for an empty
// snapshot.
func Compute(snap schedule.Snapshot) *Metrics {
	if len(snap) == 0 {
		return nil
	}

	m := &Metrics{
		LastCompleted: None,
		InProgress:    None,
		NextPlanned:   None,
	}

	var firstReal, lastReal civil.Date
	for _, r := range snap {
		switch {
		case r.Completed():
			m.LastCompleted = r.Name
		case r.InProgress():
			if m.InProgress == None {
				m.InProgress = r.Name
			}
		case r.ActualStart.IsZero():
			if m.NextPlanned == None {
				m.NextPlanned = r.Name
			}
		}

		firstReal = civil.Min(firstReal, r.ActualStart)
		lastReal = civil.Max(lastReal, r.ActualEnd)

		if !r.ActualEnd.IsZero() && !r.PlannedEnd.IsZero() && r.ActualEnd.After(r.PlannedEnd) {
			m.Overruns = append(m.Overruns, r.Name)
		}
	}

	first, last := snap[0], snap[len(snap)-1]
	if !first.PlannedStart.IsZero() && !last.PlannedEnd.IsZero() {
		m.TotalPlannedDays = civil.DaysBetween(first.PlannedStart, last.PlannedEnd)
	}
	if !firstReal.IsZero() && !lastReal.IsZero() {
		m.TotalRealDays = civil.DaysBetween(firstReal, lastReal)
	}
	return m
}
