package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		var part string
		if compact {
			part = styleFooterKey.Render(help.Key)
		} else {
			part = styleFooterKey.Render(help.Key) + styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	line := strings.Join(parts, sep)
	return styleFooter.Width(f.Width).Render(line)
}

// TimelineFooterBindings returns footer bindings for the chart view.
func TimelineFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Left, km.Right, km.ZoomDay, km.ZoomWeek, km.ZoomMonth, km.Construction, km.Phases, km.Recompute, km.Quit}
}

// PhasesFooterBindings returns footer bindings for the phase rollup view.
func PhasesFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Phases, km.Recompute, km.Quit}
}
