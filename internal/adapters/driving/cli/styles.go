package cli

import "github.com/charmbracelet/lipgloss"

// Output styles shared by the check, watch and specs commands. Colours
// degrade to plain text on terminals without colour support.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")) // Purple
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))            // Green
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))            // Yellow
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))            // Red
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))            // Gray
)
