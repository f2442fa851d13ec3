package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("39")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(accent).
			Padding(0, 1).
			MarginBottom(1)

	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	itemStyle    = lipgloss.NewStyle().PaddingLeft(2)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	emptyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)
