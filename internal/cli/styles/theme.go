// Package styles holds shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme groups the styles used by the search TUI.
type Theme struct {
	Title      lipgloss.Style
	Prompt     lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	Weight     lipgloss.Style
	Loading    lipgloss.Style
	Hint       lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Background(lipgloss.Color("236")),
		Weight:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Loading:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Hint:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		StatusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
