package listview

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("196")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	handleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	checkedStyle = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
	removeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// Selected row: inverted colors for visibility
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	// Raised row: lifted off the list while armed or dragged
	raisedRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	statusStyle      = lipgloss.NewStyle().Foreground(successColor)
	statusErrorStyle = lipgloss.NewStyle().Foreground(errorColor)
	promptLabelStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)
