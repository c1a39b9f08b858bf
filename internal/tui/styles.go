package tui

import (
	"github.com/charmbracelet/lipgloss"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/view"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	section  lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	card     lipgloss.Style
	product  lipgloss.Style
	muted    lipgloss.Style
	disabled lipgloss.Style
	error    lipgloss.Style
	success  lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa")),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		section:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")).Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4b5563")).
			Padding(0, 1),
		product:  lipgloss.NewStyle().Bold(true),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563")),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(view.ColorNegative)).
			Padding(0, 1),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(view.ColorPositive)).
			Padding(0, 1),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
	}
}

// badge renders the sentiment pill in its mapped color.
func badge(s domain.Sentiment) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(view.SentimentColor(s))).
		Padding(0, 1).
		Render(view.SentimentLabel(s))
}

func colored(s domain.Sentiment, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(view.SentimentColor(s))).Render(text)
}
