package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/golive/internal/timeline"
)

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan, primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold, at risk
	colorSuccess     = lipgloss.Color("#00E676") // Green, on time
	colorDanger      = lipgloss.Color("#FF5252") // Red, late
	colorMuted       = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray, normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white, primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white, emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface, status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface, footer bg
	colorBlue        = lipgloss.Color("#5B8DEF") // Blue, in progress
	colorToday       = lipgloss.Color("#FF4FD8") // Magenta, today marker
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusWarn = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleStatusError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// Chart styles.
var (
	styleTickHeader = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Bold(true)

	styleBarPlanned = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleToday = lipgloss.NewStyle().
			Foreground(colorToday).
			Bold(true)

	styleChartSep = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Detail panel styles.
var (
	styleDetailBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	styleDetailTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)

// barStyle returns the style of an actual bar with the given classification.
func barStyle(c timeline.Color) lipgloss.Style {
	switch c {
	case timeline.ColorOnTime:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case timeline.ColorInProgress:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case timeline.ColorAtRisk:
		return lipgloss.NewStyle().Foreground(colorAccent)
	case timeline.ColorLate:
		return lipgloss.NewStyle().Foreground(colorDanger)
	default:
		return lipgloss.NewStyle().Foreground(colorWhite)
	}
}
