package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan, primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold, node terms
	colorDanger      = lipgloss.Color("#FF5252") // Red, errors
	colorMuted       = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray, normal text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white, emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface, status bar bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Status bar style with a solid background.
var styleStatusBar = lipgloss.NewStyle().
	Background(colorSurface).
	Foreground(colorBrightWhite).
	Bold(true).
	Padding(0, 1)

// Term row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowNode = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleIndicator = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// Detail panel styles.
var (
	styleDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleDetailLabel = lipgloss.NewStyle().
				Foreground(colorMuted).
				Width(8)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
