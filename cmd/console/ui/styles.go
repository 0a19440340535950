package ui

import (
	"jewel-lending/backend/app/models"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Gold on charcoal, with one accent per request status.
var (
	gold     = lipgloss.Color("#D4AF37")
	charcoal = lipgloss.Color("#2B2B2B")
	muted    = lipgloss.Color("244")

	statusColors = map[models.RequestStatus]lipgloss.Color{
		models.StatusPending:  lipgloss.Color("#E5C07B"),
		models.StatusApproved: lipgloss.Color("#04B575"),
		models.StatusRejected: lipgloss.Color("#E06C75"),
		models.StatusReturned: lipgloss.Color("#61AFEF"),
	}

	helpStyle  = lipgloss.NewStyle().Foreground(muted)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(charcoal).Background(gold).Padding(0, 1)
	docStyle   = lipgloss.NewStyle().Padding(1, 2)

	infoStyle  = lipgloss.NewStyle().Foreground(gold)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
)

func statusBadge(s models.RequestStatus) string {
	c, ok := statusColors[s]
	if !ok {
		c = muted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(s))
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(gold).
		BorderBottom(true).
		Foreground(gold)
	s.Selected = s.Selected.
		Foreground(charcoal).
		Background(gold)
	return s
}
