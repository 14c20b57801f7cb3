package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorViolet = lipgloss.Color("#8B5CF6")
	colorIndigo = lipgloss.Color("#6366F1")
	colorGreen  = lipgloss.Color("#50C878")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorWhite  = lipgloss.Color("#E6E6E6")
	colorSubtle = lipgloss.Color("#888888")
)

var (
	feedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorViolet).
			Padding(0, 1)

	summaryBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorIndigo).
			Padding(0, 1)

	statusBar = lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	feedTextStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	callStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)
