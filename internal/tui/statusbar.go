package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/timeline"
)

// StatusBar renders the persistent top bar: work, go-live date, view and the
// latest notice.
type StatusBar struct {
	Work        planning.Work
	Status      planning.Status
	Granularity timeline.Granularity
	Kind        timeline.Kind
	Today       civil.Date
	Notice      string
	Err         error
	Width       int
}

// View renders the status bar as a single line. Narrow terminals drop the
// notice and then the view segment.
func (s StatusBar) View() string {
	const barPadding = 2
	inner := max(0, s.Width-barPadding)

	name := s.Work.Name
	if name == "" {
		name = s.Work.ID
	}
	left := styleStatusLabel.Render("golive") + " " + styleStatusValue.Render(name)
	if s.Status != "" {
		left += styleStatusValue.Render(" [" + string(s.Status) + "]")
	}

	segments := []string{
		styleStatusLabel.Render("go-live ") + styleStatusValue.Render(orDash(s.Work.GoLive.String())),
	}
	if s.Width >= CompactWidth {
		segments = append(segments, styleStatusLabel.Render("view ")+styleStatusValue.Render(kindLabel(s.Kind)+"/"+string(s.Granularity)))
	}
	switch {
	case s.Err != nil:
		segments = append(segments, styleStatusError.Render(s.Err.Error()))
	case s.Notice != "":
		segments = append(segments, styleStatusWarn.Render(s.Notice))
	}

	for len(segments) > 0 {
		right := strings.Join(segments, "  ")
		gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
		if gap >= 1 {
			return styleStatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
		}
		segments = segments[:len(segments)-1]
	}
	return styleStatusBar.Width(s.Width).Render(left)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func kindLabel(k timeline.Kind) string {
	if k == timeline.KindConstruction {
		return "construction"
	}
	return "planning"
}
