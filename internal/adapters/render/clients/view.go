package clients

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nuvora-hq/crm-cli/internal/domain"
)

const displayDateFormat = "Jan 02, 2006"

type RenderOptions struct {
	Now time.Time
	// ReminderLeadDays is the window in which an expiring subscription
	// is highlighted, matching the server's reminder lead time.
	ReminderLeadDays int
}

func renderList(list []domain.Client, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Clients"),
		s.header.Render(fmt.Sprintf("clients: %d", len(list))),
	}

	if len(list) == 0 {
		lines = append(lines, s.empty.Render("No clients yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, client := range list {
		lines = append(lines, s.section.Render(renderCard(client, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCard(client domain.Client, opts RenderOptions, s styles) string {
	header := s.name.Render(client.Name)
	if client.Company != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", s.company.Render(client.Company))
	}
	header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", expiryBadge(client, opts, s))

	parts := []string{
		header,
		s.detail.Render(fmt.Sprintf("  %s  %s", client.Email, client.Phone)),
		s.detail.Render("  Ends: " + formatDate(client.SubscriptionEnd) + "  " + remainingLabel(client, opts.Now)),
	}

	if badges := serviceBadges(client.Services, s); badges != "" {
		parts = append(parts, "  "+badges)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderDetails(client domain.Client, opts RenderOptions, s styles) string {
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.name.Render(client.Name), "  ", expiryBadge(client, opts, s)),
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label+": "), s.detail.Render(value))
	}

	if client.Company != "" {
		lines = append(lines, row("company", client.Company))
	}
	lines = append(lines,
		row("email", client.Email),
		row("phone", client.Phone),
		row("subscription", fmt.Sprintf("%s - %s (%s)",
			formatDate(client.SubscriptionStart),
			formatDate(client.SubscriptionEnd),
			remainingLabel(client, opts.Now),
		)),
	)
	if len(client.Services) > 0 {
		lines = append(lines, row("services", strings.Join(client.Services, ", ")))
	}
	if client.Notes != "" {
		lines = append(lines, row("notes", client.Notes))
	}
	if !client.CreatedAt.IsZero() {
		lines = append(lines, row("created", formatDate(client.CreatedAt)))
	}
	if !client.UpdatedAt.IsZero() {
		lines = append(lines, row("updated", formatDate(client.UpdatedAt)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func expiryBadge(client domain.Client, opts RenderOptions, s styles) string {
	days := client.DaysUntilExpiry(opts.Now)
	switch {
	case days <= 0:
		return s.badgeExpired.Render("[expired]")
	case days <= opts.ReminderLeadDays:
		return s.badgeSoon.Render(fmt.Sprintf("[%d days]", days))
	default:
		return s.badgeActive.Render("[active]")
	}
}

func remainingLabel(client domain.Client, now time.Time) string {
	days := client.DaysUntilExpiry(now)
	if days <= 0 {
		return "subscription expired"
	}

	return fmt.Sprintf("%d days remaining", days)
}

// serviceBadges shows the first three services and folds the rest into
// a "+n more" marker.
func serviceBadges(services []string, s styles) string {
	if len(services) == 0 {
		return ""
	}

	shown := services
	if len(shown) > 3 {
		shown = shown[:3]
	}

	badges := make([]string, 0, len(shown)+1)
	for _, service := range shown {
		badges = append(badges, s.service.Render("["+service+"]"))
	}
	if rest := len(services) - len(shown); rest > 0 {
		badges = append(badges, s.serviceMore.Render(fmt.Sprintf("+%d more", rest)))
	}

	return strings.Join(badges, " ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}

	return t.Format(displayDateFormat)
}
