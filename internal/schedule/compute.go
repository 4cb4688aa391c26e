package schedule

import (
	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
)

// Compute builds the planned calendar for cat by walking it backward from
// anchor. The last stage ends on anchor; every earlier stage ends where its
// successor starts and begins SLADays before that. A zero-SLA stage is a
// milestone with start == end.
//
// Actual start, actual end and responsible are carried over from the record
// in existing that matches the stage (stable key first, then exact name).
// Stages with no match start with empty actuals. An empty anchor yields an
// empty schedule. existing is never modified.
func Compute(anchor civil.Date, existing Snapshot, cat catalog.Catalog) Snapshot {
	if anchor.IsZero() || cat.Len() == 0 {
		return Snapshot{}
	}

	prev := index(existing)
	out := make(Snapshot, cat.Len())

	cursor := anchor
	for i := cat.Len() - 1; i >= 0; i-- {
		def := cat.At(i)

		end := cursor
		start := end.AddDays(-def.SLADays)

		rec := StageRecord{
			Key:          def.Key,
			Name:         def.Name,
			SLADays:      def.SLADays,
			PlannedStart: start,
			PlannedEnd:   end,
		}
		if old, ok := prev.match(def); ok {
			rec.ActualStart = old.ActualStart
			rec.ActualEnd = old.ActualEnd
			rec.Responsible = old.Responsible
		}
		out[i] = rec

		cursor = start
	}
	return out
}

// NeedsRecompute reports whether a stored schedule must be rebuilt: it is
// empty, or it was computed for a different anchor than the current one.
func NeedsRecompute(current Snapshot, computedFor, anchor civil.Date) bool {
	if anchor.IsZero() {
		return false
	}
	return len(current) == 0 || !computedFor.Equal(anchor)
}

type recordIndex struct {
	byKey  map[string]StageRecord
	byName map[string]StageRecord
}

func index(s Snapshot) recordIndex {
	idx := recordIndex{
		byKey:  make(map[string]StageRecord, len(s)),
		byName: make(map[string]StageRecord, len(s)),
	}
	for _, r := range s {
		if r.Key != "" {
			if _, dup := idx.byKey[r.Key]; !dup {
				idx.byKey[r.Key] = r
			}
		}
		if _, dup := idx.byName[r.Name]; !dup {
			idx.byName[r.Name] = r
		}
	}
	return idx
}

func (idx recordIndex) match(def catalog.StageDefinition) (StageRecord, bool) {
	if def.Key != "" {
		if r, ok := idx.byKey[def.Key]; ok {
			return r, true
		}
	}
	r, ok := idx.byName[def.Name]
	return r, ok
}
