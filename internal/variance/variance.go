// Package variance classifies the gap between a planned date and the date
// something actually happened.
package variance

import (
	"fmt"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/schedule"
)

// Label is the direction of a variance.
type Label string

// Variance labels.
const (
	Early  Label = "early"
	OnTime Label = "on-time"
	Late   Label = "late"
)

// Sign returns -1 for early, 0 for on time and +1 for late.
func (l Label) Sign() int {
	switch l {
	case Early:
		return -1
	case Late:
		return 1
	}
	return 0
}

// Variance is the signed difference actual − planned in whole days.
type Variance struct {
	DiffDays int   `json:"diff_days"`
	Label    Label `json:"label"`
}

// String renders the variance for humans, e.g. "late by 2 days".
func (v Variance) String() string {
	n := v.DiffDays
	if n < 0 {
		n = -n
	}
	unit := "days"
	if n == 1 {
		unit = "day"
	}
	switch v.Label {
	case Early:
		return fmt.Sprintf("early by %d %s", n, unit)
	case Late:
		return fmt.Sprintf("late by %d %s", n, unit)
	}
	return "on time"
}

// Classify compares actual against planned. ok is false when either date is
// missing.
func Classify(planned, actual civil.Date) (Variance, bool) {
	if planned.IsZero() || actual.IsZero() {
		return Variance{}, false
	}
	diff := civil.DaysBetween(planned, actual)
	return Variance{DiffDays: diff, Label: labelFor(diff)}, true
}

// StartVariance compares a stage's actual start with its planned start.
func StartVariance(r schedule.StageRecord) (Variance, bool) {
	return Classify(r.PlannedStart, r.ActualStart)
}

// EndVariance compares a stage's actual end with its planned end.
func EndVariance(r schedule.StageRecord) (Variance, bool) {
	return Classify(r.PlannedEnd, r.ActualEnd)
}

func labelFor(diff int) Label {
	switch {
	case diff < 0:
		return Early
	case diff > 0:
		return Late
	}
	return OnTime
}
