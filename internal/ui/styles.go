package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#58a6ff"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#30363d"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#1f6feb"))

	readStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6e7681"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	bookmarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d29922"))

	recommendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d2a8ff"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("#30363d"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6e7681")).
			Padding(2, 4)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f85149"))
)
