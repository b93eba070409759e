package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the lipgloss styles of the dashboard and scoreboard screens.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Dim      lipgloss.Style

	// Unlock banner
	Unlocked lipgloss.Style
	Locked   lipgloss.Style

	Activity lipgloss.Style
	Panel    lipgloss.Style
	Help     lipgloss.Style

	// Scoreboard
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Empty     lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		Unlocked: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Locked:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

		Activity: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4),
	}
}
