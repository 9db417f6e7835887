package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorNew       = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorWarn      = lipgloss.Color("9")   // bright red
	colorBorder    = lipgloss.Color("238") // dark gray

	// Override input
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// List items
	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleListNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleMarkerNew = lipgloss.NewStyle().
			Foreground(colorNew).
			Bold(true)

	styleMarkerPrev = lipgloss.NewStyle().
			Foreground(colorDim)

	styleSender = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleStatusWarn = lipgloss.NewStyle().
			Foreground(colorWarn).
			Padding(0, 1)

	styleStatusNote = lipgloss.NewStyle().
			Foreground(colorNew).
			Padding(0, 1)
)
