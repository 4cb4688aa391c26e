package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/golive/internal/phase"
)

// progressWidth is the width of the phase progress bar.
const progressWidth = 20

// PhasesView lists the macro-phase rollup with a progress bar per phase.
type PhasesView struct {
	Results  []phase.Result
	Selected int
	Width    int
}

// View renders one line per phase.
func (v PhasesView) View() string {
	if len(v.Results) == 0 {
		return styleDetailDim.Render("  (no phases defined)")
	}
	var lines []string
	for i, res := range v.Results {
		name := TruncateWithEllipsis(res.Key, 20)
		indicator := "  "
		nameStyle := styleRowNormal
		if i == v.Selected {
			indicator = styleSelectionIndicator.Render(selectionIndicator) + " "
			nameStyle = styleRowSelected
		}
		line := indicator + padRight(nameStyle.Render(name), 22) +
			padRight(phaseStatusStyle(res.Status).Render(string(res.Status)), 13) +
			progressBar(res.CompletionPct) + fmt.Sprintf(" %3d%%", res.CompletionPct)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Detail returns the text shown in the detail panel for the selected phase.
func (v PhasesView) Detail() (title, body string) {
	if v.Selected < 0 || v.Selected >= len(v.Results) {
		return "", ""
	}
	res := v.Results[v.Selected]
	var b strings.Builder
	fmt.Fprintf(&b, "span: %s → %s", orDash(res.Start.String()), orDash(res.End.String()))
	if res.HasRealized {
		fmt.Fprintf(&b, "  (%d days)", res.RealizedDays)
	}
	b.WriteString("\n")
	for _, rec := range res.Stages {
		if rec == nil {
			continue
		}
		mark := "·"
		switch {
		case rec.Completed():
			mark = "✓"
		case rec.InProgress():
			mark = "◎"
		}
		fmt.Fprintf(&b, "%s %s  %s → %s\n", mark, rec.Name, orDash(rec.ActualStart.String()), orDash(rec.ActualEnd.String()))
	}
	return res.Key, strings.TrimRight(b.String(), "\n")
}

func phaseStatusStyle(s phase.Status) lipgloss.Style {
	switch s {
	case phase.Completed:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case phase.InProgress:
		return lipgloss.NewStyle().Foreground(colorBlue)
	default:
		return styleRowNormal
	}
}

func progressBar(pct int) string {
	filled := min(progressWidth, max(0, pct*progressWidth/100))
	return lipgloss.NewStyle().Foreground(colorSuccess).Render(strings.Repeat("█", filled)) +
		styleBarPlanned.Render(strings.Repeat("░", progressWidth-filled))
}
