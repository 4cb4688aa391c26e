// Package catalog holds the ordered stage pipeline and the macro-phase
// groupings that every schedule computation is run against. Catalogs are
// immutable values passed explicitly to the scheduler; Default returns the
// standard 27-stage construction pipeline.
package catalog

import (
	"fmt"
	"strings"
)

// StageDefinition is one step of the delivery pipeline.
type StageDefinition struct {
	// Key is the stable identifier of the stage. It survives display-name
	// changes, so recorded actual dates follow the stage across renames.
	Key string `toml:"key" yaml:"key" json:"key"`
	// Name is the display name shown to users.
	Name string `toml:"name" yaml:"name" json:"name"`
	// SLADays is the number of calendar days allotted to the stage.
	SLADays int `toml:"sla_days" yaml:"sla_days" json:"sla_days"`
}

// Catalog is an ordered, validated list of stage definitions. Order is the
// dependency order used by backward propagation.
type Catalog struct {
	stages []StageDefinition
}

// New validates defs and returns a Catalog holding a private copy of them.
func New(defs ...StageDefinition) (Catalog, error) {
	names := make(map[string]bool, len(defs))
	keys := make(map[string]bool, len(defs))
	for i, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			return Catalog{}, fmt.Errorf("stage %d: name: %w", i, ErrMissingField)
		}
		if strings.TrimSpace(d.Key) == "" {
			return Catalog{}, fmt.Errorf("stage %q: key: %w", d.Name, ErrMissingField)
		}
		if d.SLADays < 0 {
			return Catalog{}, fmt.Errorf("stage %q: %d: %w", d.Name, d.SLADays, ErrNegativeSLA)
		}
		if names[d.Name] {
			return Catalog{}, fmt.Errorf("stage %q: %w", d.Name, ErrDuplicateName)
		}
		if keys[d.Key] {
			return Catalog{}, fmt.Errorf("stage %q: key %q: %w", d.Name, d.Key, ErrDuplicateKey)
		}
		names[d.Name] = true
		keys[d.Key] = true
	}

	stages := make([]StageDefinition, len(defs))
	copy(stages, defs)
	return Catalog{stages: stages}, nil
}

// MustNew is like New but panics on an invalid catalog. Use it only for
// static tables.
func MustNew(defs ...StageDefinition) Catalog {
	c, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of stages.
func (c Catalog) Len() int { return len(c.stages) }

// At returns the i-th stage in pipeline order.
func (c Catalog) At(i int) StageDefinition { return c.stages[i] }

// Stages returns a copy of the stage list in pipeline order.
func (c Catalog) Stages() []StageDefinition {
	out := make([]StageDefinition, len(c.stages))
	copy(out, c.stages)
	return out
}

// Lookup finds a stage by key or exact display name.
func (c Catalog) Lookup(keyOrName string) (StageDefinition, bool) {
	for _, s := range c.stages {
		if s.Key == keyOrName || s.Name == keyOrName {
			return s, true
		}
	}
	return StageDefinition{}, false
}

// TotalSLADays sums every stage's SLA: the length of the planned chain.
func (c Catalog) TotalSLADays() int {
	total := 0
	for _, s := range c.stages {
		total += s.SLADays
	}
	return total
}

// PhaseDefinition groups stage names into a macro phase for reporting.
// Members are matched against stage names leniently (see package phase).
type PhaseDefinition struct {
	Key     string   `toml:"key" yaml:"key" json:"key"`
	Members []string `toml:"members" yaml:"members" json:"members"`
}

// Default returns the standard construction delivery pipeline, ending with
// the zero-SLA go-live anchor.
func Default() Catalog {
	return MustNew(
		StageDefinition{Key: "contract_signed", Name: "Contrato Assinado", SLADays: 1},
		StageDefinition{Key: "layout_approved", Name: "Layout aprovado", SLADays: 1},
		StageDefinition{Key: "design_lpu_request", Name: "Projetos - Solicitação LPU", SLADays: 1},
		StageDefinition{Key: "design_lpu_receipt", Name: "Projetos - Recebimento LPU", SLADays: 2},
		StageDefinition{Key: "design_lpu_validation", Name: "Projetos - Validação de LPU", SLADays: 1},
		StageDefinition{Key: "design_lpu_submission", Name: "Projetos - Envio para aprovação LPU", SLADays: 1},
		StageDefinition{Key: "design_cost_approval", Name: "Projetos - Aprovação de custos", SLADays: 1},
		StageDefinition{Key: "design_purchase_order", Name: "Projetos - Emissão de Ordem de Compra", SLADays: 10},
		StageDefinition{Key: "design_drafting", Name: "Projetos - Elaboração", SLADays: 10},
		StageDefinition{Key: "design_technical_review", Name: "Projetos - Validação técnica", SLADays: 3},
		StageDefinition{Key: "design_validated", Name: "Projetos - Projeto validado", SLADays: 3},
		StageDefinition{Key: "works_lpu_request", Name: "Obras - Solicitação LPU", SLADays: 2},
		StageDefinition{Key: "works_lpu_receipt", Name: "Obras - Recebimento LPU", SLADays: 7},
		StageDefinition{Key: "works_lpu_validation", Name: "Obras - Validação de LPU", SLADays: 2},
		StageDefinition{Key: "works_lpu_submission", Name: "Obras - Envio para aprovação LPU", SLADays: 2},
		StageDefinition{Key: "works_cost_approval", Name: "Obras - Aprovação de custos", SLADays: 2},
		StageDefinition{Key: "works_purchase_order", Name: "Obras - Emissão de Ordem de Compra", SLADays: 15},
		StageDefinition{Key: "mgmt_documentation", Name: "Gerenciamento - Documentação", SLADays: 1},
		StageDefinition{Key: "mgmt_onboarding", Name: "Gerenciamento - Integração", SLADays: 3},
		StageDefinition{Key: "mgmt_document_signing", Name: "Gerenciamento - Assinatura documentos", SLADays: 3},
		StageDefinition{Key: "mgmt_contractor_kickoff", Name: "Gerenciamento - Kickoff Construtora", SLADays: 1},
		StageDefinition{Key: "mgmt_works_start_notice", Name: "Gerenciamento - Comunicar início de obras", SLADays: 1},
		StageDefinition{Key: "mgmt_works_followup", Name: "Gerenciamento - Acompanhamento de obras", SLADays: 50},
		StageDefinition{Key: "mgmt_works_end_notice", Name: "Gerenciamento - Comunicar Término", SLADays: 1},
		StageDefinition{Key: "closeout_checklist", Name: "CloseOut - CheckList", SLADays: 15},
		StageDefinition{Key: "closeout_inspection", Name: "CloseOut - Vistoria", SLADays: 15},
		StageDefinition{Key: "closeout_golive", Name: "CloseOut - GoLive", SLADays: 0},
	)
}

// DefaultPhases returns the macro-phase groupings used by the progress
// report. "LPU Obras" intentionally leaves out the receipt stage.
func DefaultPhases() []PhaseDefinition {
	return []PhaseDefinition{
		{Key: "Contrato Assinado", Members: []string{"Contrato Assinado"}},
		{Key: "Layout Aprovado", Members: []string{"Layout Aprovado"}},
		{Key: "LPU Projetos", Members: []string{
			"Projetos - Solicitação LPU",
			"Projetos - Recebimento LPU",
			"Projetos - Validação de LPU",
			"Projetos - Envio para aprovação LPU",
			"Projetos - Aprovação de custos",
			"Projetos - Emissão de Ordem de Compra",
			"Projetos - Elaboração",
			"Projetos - Validação técnica",
			"Projetos - Projeto validado",
		}},
		{Key: "LPU Obras", Members: []string{
			"Obras - Solicitação LPU",
			"Obras - Validação de LPU",
			"Obras - Envio para aprovação LPU",
			"Obras - Aprovação de custos",
			"Obras - Emissão de Ordem de Compra",
		}},
		{Key: "Gerenciamento", Members: []string{
			"Gerenciamento - Documentação",
			"Gerenciamento - Integração",
			"Gerenciamento - Assinatura documentos",
			"Gerenciamento - Kickoff Construtora",
			"Gerenciamento - Comunicar início de obras",
			"Gerenciamento - Acompanhamento de obras",
			"Gerenciamento - Comunicar Término",
		}},
		{Key: "CloseOut", Members: []string{
			"CloseOut - CheckList",
			"CloseOut - Vistoria",
			"CloseOut - GoLive",
		}},
		{Key: "GoLive", Members: []string{"GoLive"}},
	}
}

// ValidatePhases checks that phase keys are present and unique.
func ValidatePhases(defs []PhaseDefinition) error {
	seen := make(map[string]bool, len(defs))
	for i, p := range defs {
		if strings.TrimSpace(p.Key) == "" {
			return fmt.Errorf("phase %d: key: %w", i, ErrMissingField)
		}
		if seen[p.Key] {
			return fmt.Errorf("phase %q: %w", p.Key, ErrDuplicatePhase)
		}
		seen[p.Key] = true
	}
	return nil
}
