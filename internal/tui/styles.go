package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.Color("#85DCB0") // mint green
	textColor    = lipgloss.Color("#F3F4F6") // light text
	dimTextColor = lipgloss.Color("#9CA3AF") // dim text

	counterStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(textColor)

	byteStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)
)
