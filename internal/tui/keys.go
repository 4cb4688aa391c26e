package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	ZoomDay      key.Binding
	ZoomWeek     key.Binding
	ZoomMonth    key.Binding
	Construction key.Binding
	Phases       key.Binding
	Recompute    key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "earlier"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "later"),
		),
		ZoomDay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "day"),
		),
		ZoomWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week"),
		),
		ZoomMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month"),
		),
		Construction: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "construction"),
		),
		Phases: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "phases"),
		),
		Recompute: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recompute"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
