package clients

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	header       lipgloss.Style
	name         lipgloss.Style
	company      lipgloss.Style
	detail       lipgloss.Style
	label        lipgloss.Style
	section      lipgloss.Style
	empty        lipgloss.Style
	badgeExpired lipgloss.Style
	badgeSoon    lipgloss.Style
	badgeActive  lipgloss.Style
	service      lipgloss.Style
	serviceMore  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true),
		header:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		company:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		detail:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		label:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		section:      lipgloss.NewStyle().MarginTop(1),
		empty:        lipgloss.NewStyle().Faint(true),
		badgeExpired: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		badgeSoon:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")),
		badgeActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		service:      lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		serviceMore:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
