package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/pantry/internal/expiry"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func severityStyle(s expiry.Severity) lipgloss.Style {
	switch s {
	case expiry.Expired, expiry.Today:
		return errorStyle
	case expiry.Tomorrow, expiry.Soon:
		return pendingStyle
	case expiry.Week:
		return accentStyle
	default:
		return mutedStyle
	}
}
