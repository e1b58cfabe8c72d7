package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	speakerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	todoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
)

// colorEnabled reports whether replies should be styled. Styling is off until
// a config turns it on.
func colorEnabled() bool {
	return AppConfig != nil && AppConfig.Display.Color
}

// paint renders s with style when color is enabled.
func paint(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// assistantName returns the configured assistant name.
func assistantName() string {
	if AppConfig != nil && AppConfig.Assistant.Name != "" {
		return AppConfig.Assistant.Name
	}
	return "El Primo"
}
