package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1A7A2E")).
			Padding(0, 1).
			Bold(true)

	dealerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2B8C6")).
			Bold(true)

	handStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	activeHandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	balanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E3C567")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D94F70")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D94F70"))
)
