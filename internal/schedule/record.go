// Package schedule computes planned stage calendars backward from a go-live
// anchor and carries recorded actual dates across recomputations. Records and
// snapshots are values: every update returns a new copy and the input is
// never modified.
package schedule

import "github.com/papapumpkin/golive/internal/civil"

// StageRecord is one materialised stage of a schedule.
type StageRecord struct {
	ID           string     `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Key          string     `json:"key,omitempty" toml:"key,omitempty" yaml:"key,omitempty"`
	Name         string     `json:"name" toml:"name" yaml:"name"`
	SLADays      int        `json:"sla" toml:"sla" yaml:"sla"`
	PlannedStart civil.Date `json:"start_planned" toml:"start_planned" yaml:"start_planned"`
	PlannedEnd   civil.Date `json:"end_planned" toml:"end_planned" yaml:"end_planned"`
	ActualStart  civil.Date `json:"start_real" toml:"start_real" yaml:"start_real"`
	ActualEnd    civil.Date `json:"end_real" toml:"end_real" yaml:"end_real"`
	Responsible  string     `json:"responsible" toml:"responsible" yaml:"responsible"`
	SLALimit     int        `json:"sla_limit,omitempty" toml:"sla_limit,omitempty" yaml:"sla_limit,omitempty"`
	Description  string     `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

// Completed reports whether both actual dates are recorded.
func (r StageRecord) Completed() bool {
	return !r.ActualStart.IsZero() && !r.ActualEnd.IsZero()
}

// InProgress reports whether work started but has not finished.
func (r StageRecord) InProgress() bool {
	return !r.ActualStart.IsZero() && r.ActualEnd.IsZero()
}

// HasPlanned reports whether the stage carries a planned start.
func (r StageRecord) HasPlanned() bool {
	return !r.PlannedStart.IsZero()
}

// WithActualStart returns a copy of r with the actual start replaced.
func (r StageRecord) WithActualStart(d civil.Date) StageRecord {
	r.ActualStart = d
	return r
}

// WithActualEnd returns a copy of r with the actual end replaced.
func (r StageRecord) WithActualEnd(d civil.Date) StageRecord {
	r.ActualEnd = d
	return r
}

// WithResponsible returns a copy of r with the responsible party replaced.
func (r StageRecord) WithResponsible(who string) StageRecord {
	r.Responsible = who
	return r
}

// RealDuration returns how many days the stage has actually taken: actual
// end (or today, while in progress) minus actual start. ok is false when the
// stage has not started.
func (r StageRecord) RealDuration(today civil.Date) (days int, ok bool) {
	if r.ActualStart.IsZero() {
		return 0, false
	}
	end := r.ActualEnd
	if end.IsZero() {
		end = today
	}
	return civil.DaysBetween(r.ActualStart, end), true
}

// Snapshot is the ordered list of stage records for one project.
type Snapshot []StageRecord

// Clone returns a copy of s that shares no backing array with it.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Find returns the index of the record matching keyOrName by stable key or
// exact display name, or -1.
func (s Snapshot) Find(keyOrName string) int {
	for i, r := range s {
		if (r.Key != "" && r.Key == keyOrName) || r.Name == keyOrName {
			return i
		}
	}
	return -1
}

// Update returns a copy of s in which the record matching keyOrName has been
// replaced by fn(record). ok is false, and s is returned unchanged, when no
// record matches.
func (s Snapshot) Update(keyOrName string, fn func(StageRecord) StageRecord) (Snapshot, bool) {
	i := s.Find(keyOrName)
	if i < 0 {
		return s, false
	}
	out := s.Clone()
	out[i] = fn(out[i])
	return out, true
}

// Dates returns every valid date carried by the snapshot, planned and actual.
func (s Snapshot) Dates() []civil.Date {
	var out []civil.Date
	for _, r := range s {
		for _, d := range [...]civil.Date{r.PlannedStart, r.PlannedEnd, r.ActualStart, r.ActualEnd} {
			if !d.IsZero() {
				out = append(out, d)
			}
		}
	}
	return out
}
