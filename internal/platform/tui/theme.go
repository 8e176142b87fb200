package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the non-3D screens and the status line.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Item         lipgloss.Style
	SelectedItem lipgloss.Style
	HUD          lipgloss.Style
	HUDValue     lipgloss.Style
	HUDAlert     lipgloss.Style
	Help         lipgloss.Style
	Panel        lipgloss.Style
	Empty        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Item: lipgloss.NewStyle(),
		SelectedItem: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		HUD: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		HUDValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		HUDAlert: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
