package tui

import (
	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/domain"
)

// colorHex maps the category palette to terminal colors
var colorHex = map[domain.Color]string{
	domain.ColorBlue:   "#61AFEF",
	domain.ColorGreen:  "#98C379",
	domain.ColorYellow: "#E5C07B",
	domain.ColorRed:    "#E06C75",
	domain.ColorPurple: "#C678DD",
}

var priorityColor = map[domain.Priority]domain.Color{
	domain.PriorityHigh:   domain.ColorRed,
	domain.PriorityMedium: domain.ColorYellow,
	domain.PriorityLow:    domain.ColorGreen,
}

type styles struct {
	title    lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	cursor   lipgloss.Style
	done     lipgloss.Style
	muted    lipgloss.Style
	overdue  lipgloss.Style
	status   lipgloss.Style
	reminder lipgloss.Style
	panel    lipgloss.Style
}

// newStyles returns the styles for theme
func newStyles(theme domain.Theme) styles {
	accent := lipgloss.Color("#5C99D6")
	muted := lipgloss.Color("#7F8490")
	if theme == domain.ThemeDark {
		accent = lipgloss.Color("#BB9AF7")
		muted = lipgloss.Color("#A9B1D6")
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		tabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		done:     lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		muted:    lipgloss.NewStyle().Foreground(muted),
		overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorHex[domain.ColorRed])),
		status:   lipgloss.NewStyle().Italic(true).Foreground(muted),
		reminder: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHex[domain.ColorYellow])),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}

// paint renders s in the terminal color for c
func paint(c domain.Color, s string) string {
	hex, ok := colorHex[c]
	if !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}
