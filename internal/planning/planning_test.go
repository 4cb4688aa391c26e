package planning

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/schedule"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Status
	}{
		{"Rascunho", StatusDraft},
		{"draft", StatusDraft},
		{"ATIVO", StatusActive},
		{"Concluído", StatusDone},
		{"concluido", StatusDone},
		{" archived ", StatusArchived},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseStatus("paused"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("ParseStatus(paused) err = %v, want ErrUnknownStatus", err)
	}
}

func TestNewActionPlan(t *testing.T) {
	t.Parallel()

	stage := schedule.StageRecord{Key: "layout_approved", Name: "Layout aprovado"}
	ap, err := NewActionPlan(ActionPlanning, stage, civil.MustParse("2025-03-01"), 5, "chase landlord")
	if err != nil {
		t.Fatalf("NewActionPlan: %v", err)
	}
	if _, err := uuid.Parse(ap.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", ap.ID, err)
	}
	if ap.End.String() != "2025-03-06" {
		t.Errorf("End = %s, want 2025-03-06", ap.End)
	}
	if ap.StageID != "layout_approved" || ap.StageName != "Layout aprovado" {
		t.Errorf("stage reference = %q/%q", ap.StageID, ap.StageName)
	}
}

func TestNewActionPlan_Errors(t *testing.T) {
	t.Parallel()

	stage := schedule.StageRecord{Name: "X"}
	if _, err := NewActionPlan("other", stage, civil.MustParse("2025-03-01"), 1, ""); !errors.Is(err, ErrUnknownActionType) {
		t.Errorf("unknown type err = %v", err)
	}
	if _, err := NewActionPlan(ActionConstruction, stage, civil.Date{}, 1, ""); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing start err = %v", err)
	}
}

func TestNewConstructionStage(t *testing.T) {
	t.Parallel()

	st, err := NewConstructionStage("Alvenaria", civil.MustParse("2025-04-01"), 10, 12)
	if err != nil {
		t.Fatalf("NewConstructionStage: %v", err)
	}
	if st.ID == "" || st.PlannedEnd.String() != "2025-04-11" || st.SLALimit != 12 {
		t.Errorf("stage = %+v", st)
	}
	if _, err := NewConstructionStage("  ", civil.MustParse("2025-04-01"), 1, 0); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank name err = %v", err)
	}
}

func TestDataJSONUsesStoredFieldNames(t *testing.T) {
	t.Parallel()

	raw := `{"schedule":[{"name":"Contrato Assinado","sla":1,"start_planned":"2025-01-01","end_planned":"2025-01-02","start_real":"not a date","end_real":null,"responsible":"ana"}]}`
	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := data.Schedule[0]
	if got.PlannedEnd.String() != "2025-01-02" || !got.ActualStart.IsZero() || got.Responsible != "ana" {
		t.Errorf("decoded stage = %+v", got)
	}
}

func TestActionPlansFor(t *testing.T) {
	t.Parallel()

	p := NewPlanning("w1")
	p.Data.ActionPlans = []ActionPlan{
		{StageID: "layout_approved", StageName: "Layout aprovado"},
		{StageID: "other", StageName: "Contrato Assinado"},
	}
	got := p.ActionPlansFor(schedule.StageRecord{Key: "layout_approved", Name: "Layout aprovado"})
	if len(got) != 1 {
		t.Errorf("ActionPlansFor = %v", got)
	}
	if p.Status != StatusDraft {
		t.Errorf("new planning status = %s", p.Status)
	}
}
