package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors (dark palette by default; applyTheme swaps them)
	primaryColor = lipgloss.Color("99")  // Purple
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red
	borderColor  = lipgloss.Color("63")  // Soft purple

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("255"))

	// Layout
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(mutedColor).Bold(true)
)

// applyTheme rebuilds the palette for dark or light terminals. Styles
// capture colors at construction so they are rebuilt as well.
func applyTheme(dark bool) {
	if dark {
		primaryColor = lipgloss.Color("99")
		accentColor = lipgloss.Color("205")
		mutedColor = lipgloss.Color("241")
		successColor = lipgloss.Color("76")
		warningColor = lipgloss.Color("214")
		errorColor = lipgloss.Color("196")
		borderColor = lipgloss.Color("63")
		helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
		selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("255"))
	} else {
		primaryColor = lipgloss.Color("57")
		accentColor = lipgloss.Color("162")
		mutedColor = lipgloss.Color("245")
		successColor = lipgloss.Color("28")
		warningColor = lipgloss.Color("130")
		errorColor = lipgloss.Color("124")
		borderColor = lipgloss.Color("104")
		helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("31"))
		selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("231"))
	}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	appBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(mutedColor).Bold(true)
}
