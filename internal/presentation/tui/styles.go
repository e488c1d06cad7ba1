package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#a78bfa")
	subtle = lipgloss.Color("#6b7280")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	stepStyle     = lipgloss.NewStyle().Foreground(subtle)
	descStyle     = lipgloss.NewStyle().Italic(true).Foreground(subtle)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	helpStyle     = lipgloss.NewStyle().Foreground(subtle).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))
	urlStyle      = lipgloss.NewStyle().Foreground(subtle).Underline(true)
	markStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#ffeb3b")).Foreground(lipgloss.Color("#000000"))
	overlayStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	compareStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 1)
	selectedTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
)
