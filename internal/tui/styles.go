package tui

import "github.com/charmbracelet/lipgloss"

// Styles agrupa los estilos de cada tipo de burbuja.
type Styles struct {
	Header    lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Error     lipgloss.Style
	Typing    lipgloss.Style
	Prompt    lipgloss.Style
	Help      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#5A56E0")).Padding(0, 1),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD1FF")).Bold(true),
		Assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("#C3E88D")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Italic(true),
		Typing:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5A56E0")).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}
