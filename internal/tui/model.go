package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/planner"
	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/timeline"
	"github.com/papapumpkin/golive/internal/variance"
)

// Source is what the viewer needs from the planner. *planner.Planner
// satisfies it.
type Source interface {
	Report(ctx context.Context, workID string, opts planner.ReportOptions) (planner.Report, error)
	Recompute(ctx context.Context, workID string) (planning.Planning, error)
	SetCatalog(cat catalog.Catalog, phases []catalog.PhaseDefinition)
}

// scrollStep is how many chart columns one left/right key press moves.
const scrollStep = 8

// Options configure a viewer.
type Options struct {
	WorkID      string
	Granularity timeline.Granularity
	Kind        timeline.Kind
	// Today is the reference date for open bars and the today marker.
	Today civil.Date
	// Reloads, when set, delivers catalog changes to apply live.
	Reloads <-chan catalog.Reload
}

// AppModel is the root bubbletea model of the timeline viewer.
type AppModel struct {
	Keys      KeyMap
	StatusBar StatusBar
	Detail    DetailPanel

	ctx     context.Context
	src     Source
	opts    Options
	report  *planner.Report
	loading bool

	ShowPhases    bool
	Selected      int
	PhaseSelected int
	XOffset       int
	Width         int
	Height        int
}

// NewAppModel creates the viewer model for one work.
func NewAppModel(ctx context.Context, src Source, opts Options) AppModel {
	if opts.Granularity == "" {
		opts.Granularity = timeline.Week
	}
	return AppModel{
		Keys: DefaultKeyMap(),
		StatusBar: StatusBar{
			Work:        planning.Work{ID: opts.WorkID},
			Granularity: opts.Granularity,
			Kind:        opts.Kind,
			Today:       opts.Today,
		},
		Detail:  NewDetailPanel(80, detailHeight),
		ctx:     ctx,
		src:     src,
		opts:    opts,
		loading: true,
	}
}

// Init loads the first report and starts listening for catalog reloads.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), waitForReload(m.opts.Reloads))
}

func (m AppModel) reload() tea.Cmd {
	return loadReport(m.ctx, m.src, m.opts.WorkID, planner.ReportOptions{
		Granularity: m.opts.Granularity,
		Kind:        m.opts.Kind,
		Today:       m.opts.Today,
	})
}

// Report returns the report currently shown, or nil before the first load.
func (m AppModel) Report() *planner.Report { return m.report }

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Detail.SetSize(max(0, msg.Width-4), detailHeight)
		m.XOffset = min(m.XOffset, m.gantt().MaxOffset())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgReport:
		m.loading = false
		if msg.Err != nil {
			m.StatusBar.Err = msg.Err
			return m, nil
		}
		rep := msg.Report
		m.report = &rep
		m.StatusBar.Err = nil
		m.StatusBar.Work = rep.Work
		m.StatusBar.Status = rep.Planning.Status
		m.Selected = clamp(m.Selected, m.rowCount())
		m.PhaseSelected = clamp(m.PhaseSelected, len(rep.Phases))
		m.XOffset = min(m.XOffset, m.gantt().MaxOffset())
		m.updateDetail()

	case MsgCatalogReload:
		cmds := []tea.Cmd{waitForReload(m.opts.Reloads)}
		if msg.Reload.Err != nil {
			m.StatusBar.Err = fmt.Errorf("catalog reload: %w", msg.Reload.Err)
			return m, tea.Batch(cmds...)
		}
		m.src.SetCatalog(msg.Reload.Catalog, msg.Reload.Phases)
		m.StatusBar.Err = nil
		m.StatusBar.Notice = fmt.Sprintf("catalog reloaded (%d stages), r to recompute", msg.Reload.Catalog.Len())
		cmds = append(cmds, m.reload())
		return m, tea.Batch(cmds...)

	case MsgRecomputed:
		if msg.Err != nil {
			m.StatusBar.Err = msg.Err
			return m, nil
		}
		m.StatusBar.Notice = "schedule recomputed"
		return m, m.reload()
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.Keys.Left):
		if !m.ShowPhases {
			m.XOffset = max(0, m.XOffset-scrollStep)
		}
	case key.Matches(msg, m.Keys.Right):
		if !m.ShowPhases {
			m.XOffset = min(m.gantt().MaxOffset(), m.XOffset+scrollStep)
		}

	case key.Matches(msg, m.Keys.ZoomDay):
		return m.zoom(timeline.Day)
	case key.Matches(msg, m.Keys.ZoomWeek):
		return m.zoom(timeline.Week)
	case key.Matches(msg, m.Keys.ZoomMonth):
		return m.zoom(timeline.Month)

	case key.Matches(msg, m.Keys.Construction):
		if m.opts.Kind == timeline.KindConstruction {
			m.opts.Kind = timeline.KindPlanning
		} else {
			m.opts.Kind = timeline.KindConstruction
		}
		m.StatusBar.Kind = m.opts.Kind
		m.Selected, m.XOffset = 0, 0
		return m, m.reload()

	case key.Matches(msg, m.Keys.Phases):
		m.ShowPhases = !m.ShowPhases
		m.updateDetail()

	case key.Matches(msg, m.Keys.Recompute):
		m.StatusBar.Notice = "recomputing..."
		return m, recompute(m.ctx, m.src, m.opts.WorkID)

	default:
		m.Detail.Update(msg)
	}
	return m, nil
}

func (m AppModel) zoom(g timeline.Granularity) (tea.Model, tea.Cmd) {
	if g == m.opts.Granularity {
		return m, nil
	}
	m.opts.Granularity = g
	m.StatusBar.Granularity = g
	m.XOffset = 0
	return m, m.reload()
}

func (m *AppModel) moveSelection(delta int) {
	if m.ShowPhases {
		if m.report != nil {
			m.PhaseSelected = clamp(m.PhaseSelected+delta, len(m.report.Phases))
		}
	} else {
		m.Selected = clamp(m.Selected+delta, m.rowCount())
	}
	m.updateDetail()
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	return min(i, n-1)
}

func (m AppModel) rowCount() int {
	if m.report == nil || m.report.Timeline == nil {
		return 0
	}
	return len(m.report.Timeline.Rows)
}

func (m AppModel) gantt() GanttView {
	v := GanttView{
		Today:    m.opts.Today,
		Selected: m.Selected,
		XOffset:  m.XOffset,
		Width:    m.Width,
		Height:   m.chartHeight(),
	}
	if m.report != nil {
		v.Geometry = m.report.Timeline
	}
	return v
}

func (m AppModel) phasesView() PhasesView {
	v := PhasesView{Selected: m.PhaseSelected, Width: m.Width}
	if m.report != nil {
		v.Results = m.report.Phases
	}
	return v
}

func (m AppModel) showDetailPanel() bool {
	return m.Height == 0 || m.Height >= DetailCollapseHeight
}

func (m AppModel) chartHeight() int {
	h := m.Height - chrome
	if m.showDetailPanel() {
		h -= detailHeight + 3
	}
	return max(1, h)
}

// updateDetail refreshes the detail panel from the current selection.
func (m *AppModel) updateDetail() {
	if m.report == nil {
		m.Detail.SetEmpty("loading...")
		return
	}
	if m.ShowPhases {
		title, body := m.phasesView().Detail()
		if title == "" {
			m.Detail.SetEmpty("no phase selected")
			return
		}
		m.Detail.SetContent(title, body)
		return
	}

	snap := m.report.Snapshot(m.opts.Kind)
	if m.Selected >= len(snap) {
		m.Detail.SetEmpty("no stage selected")
		return
	}
	rec := snap[m.Selected]

	var b strings.Builder
	fmt.Fprintf(&b, "planned: %s → %s  (SLA %d days", orDash(rec.PlannedStart.String()), orDash(rec.PlannedEnd.String()), rec.SLADays)
	if rec.SLALimit > 0 {
		fmt.Fprintf(&b, ", limit %d", rec.SLALimit)
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "actual:  %s → %s", orDash(rec.ActualStart.String()), orDash(rec.ActualEnd.String()))
	if days, ok := rec.RealDuration(m.opts.Today); ok {
		fmt.Fprintf(&b, "  (%d days)", days)
	}
	b.WriteString("\n")
	if v, ok := variance.StartVariance(rec); ok {
		fmt.Fprintf(&b, "start:   %s\n", v)
	}
	if v, ok := variance.EndVariance(rec); ok {
		fmt.Fprintf(&b, "end:     %s\n", v)
	}
	fmt.Fprintf(&b, "responsible: %s\n", orDash(rec.Responsible))
	for _, ap := range m.report.Planning.ActionPlansFor(rec) {
		fmt.Fprintf(&b, "action: %s (%s → %s)\n", ap.Description, ap.Start, ap.End)
	}
	m.Detail.SetContent(rec.Name, strings.TrimRight(b.String(), "\n"))
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.Width == 0 {
		return "initializing..."
	}

	sections := []string{m.StatusBar.View()}

	switch {
	case m.report == nil && m.loading:
		sections = append(sections, styleDetailDim.Render("  loading..."))
	case m.report == nil:
		sections = append(sections, styleDetailDim.Render("  (no report)"))
	case m.ShowPhases:
		sections = append(sections, m.phasesView().View())
	default:
		sections = append(sections, m.gantt().View())
	}

	if m.report != nil && m.showDetailPanel() {
		sections = append(sections, m.Detail.View())
	}

	f := Footer{Width: m.Width, Bindings: TimelineFooterBindings(m.Keys)}
	if m.ShowPhases {
		f.Bindings = PhasesFooterBindings(m.Keys)
	}
	sections = append(sections, f.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
