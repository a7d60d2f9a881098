package main

import "github.com/charmbracelet/lipgloss"

// labelVisualW is the width of the "q[n]" label column in diagrams.
const labelVisualW = 5

// Palette (Tokyo Night).
const (
	colorOrange = lipgloss.Color("#ff9e64")
	colorYellow = lipgloss.Color("#e0af68")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorTeal   = lipgloss.Color("#73daca")
	colorCyan   = lipgloss.Color("#7dcfff")
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorPurple = lipgloss.Color("#bb9af7")
	colorFg     = lipgloss.Color("#c0caf5")
	colorWire   = lipgloss.Color("#a9b1d6")
	colorMuted  = lipgloss.Color("#565f89")
)

// panel returns a rounded bordered box. padY is the vertical padding.
func panel(border lipgloss.TerminalColor, padY int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(padY, 1)
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Panels.
var (
	circuitStyle    = panel(colorBlue, 1)
	qasmStyle       = panel(colorPurple, 1)
	stateStyle      = panel(colorTeal, 0)
	blochStyle      = panel(colorYellow, 0)
	controlsStyle   = panel(colorGreen, 0)
	menuBorderStyle = panel(colorOrange, 0)
)

// Text.
var (
	titleStyle        = fg(colorOrange).Bold(true)
	cursorBoxStyle    = fg(colorOrange).Bold(true)
	targetSelectStyle = fg(colorPurple).Bold(true)
	activeGateStyle   = fg(colorYellow)
	qubitLabelStyle   = fg(colorCyan)
	gateStyle         = fg(colorTeal).Bold(true)
	wireStyle         = fg(colorWire)
	probBarStyle      = fg(colorGreen)
	dimStyle          = fg(colorMuted)
	menuSelectedStyle = fg(colorOrange).Bold(true)
	menuNormalStyle   = fg(colorFg)
)
