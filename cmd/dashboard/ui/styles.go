package ui

import "github.com/charmbracelet/lipgloss"

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#25A065")).
				Render

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF0000")).
				Render

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	// card
	cardHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2933")).
			Background(lipgloss.Color("#e1e6ea")).
			Bold(true).
			Padding(0, 1)
	cardHeadingStyle    = lipgloss.NewStyle().Bold(true)
	cardSubheadingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cardRuleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cardSwitchOnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#25A065")).Bold(true)
	cardSwitchOffStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusColors = map[string]lipgloss.Color{
		colorGreen: lipgloss.Color("#2E7D32"),
		colorRed:   lipgloss.Color("#C62828"),
	}
)

func cardBorder(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)
	if focused {
		return s.BorderForeground(lipgloss.Color("205"))
	}
	return s.BorderForeground(lipgloss.Color("240"))
}
