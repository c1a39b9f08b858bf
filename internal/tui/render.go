package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/view"
)

func (m *Model) View() string {
	s := m.state
	st := m.styles
	var b strings.Builder

	b.WriteString(st.title.Render("🎯 Analisis Ulasan Produk"))
	b.WriteString("\n")
	b.WriteString(st.subtitle.Render("Analisis sentimen dengan Hugging Face • Ekstrak poin utama dengan Gemini AI"))
	b.WriteString("\n\n")

	if s.Error != "" {
		b.WriteString(st.error.Render("⚠ "+s.Error) + st.help.Render("  esc"))
		b.WriteString("\n")
	}
	if s.Success != "" {
		b.WriteString(st.success.Render(s.Success) + st.help.Render("  esc"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderForm())
	b.WriteString(m.renderStats())
	b.WriteString(m.renderFilters())
	b.WriteString(m.renderReviews())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) fieldLabel(f focus, text string) string {
	if m.focus == f {
		return m.styles.focused.Render("▸ " + text)
	}
	return m.styles.label.Render("  " + text)
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.styles.section.Render("📝 Tulis Ulasan"))
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(focusProduct, "Nama Produk"))
	b.WriteString("\n")
	b.WriteString(m.product.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(focusReview, "Ulasan"))
	b.WriteString("\n")
	b.WriteString(m.review.View())
	b.WriteString("\n")
	if m.state.Busy {
		b.WriteString(m.spinner.View() + " Menganalisis...")
	} else {
		b.WriteString(m.styles.help.Render("ctrl+s untuk menganalisis"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderStats() string {
	s := m.state
	if !s.HasStats {
		return ""
	}
	st := s.Stats
	parts := []string{
		fmt.Sprintf("Total %d", st.Total),
		colored(domain.SentimentPositive, fmt.Sprintf("😊 %d (%.1f%%)", st.Positive, st.PositivePercentage)),
		colored(domain.SentimentNegative, fmt.Sprintf("😞 %d (%.1f%%)", st.Negative, st.NegativePercentage)),
		colored(domain.SentimentNeutral, fmt.Sprintf("😐 %d (%.1f%%)", st.Neutral, st.NeutralPercentage)),
	}
	return m.styles.section.Render("📊 Statistik") + "\n" + strings.Join(parts, "   ") + "\n"
}

func (m *Model) renderFilters() string {
	q := m.state.Query
	var b strings.Builder
	b.WriteString(m.styles.section.Render("🔎 Filter & Urutkan"))
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(focusSearch, "Nama Produk"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.styles.label.Render(fmt.Sprintf("  Sentimen: %s   Urutkan: %s   Per Halaman: %d ulasan",
		view.FilterLabel(q.Filter), view.SortLabel(q.Sort), q.PageSize)))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderReviews() string {
	s := m.state
	var b strings.Builder
	title := fmt.Sprintf("📋 Daftar Ulasan (%d)", len(s.Reviews))
	if s.Loading {
		title += " " + m.spinner.View()
	}
	b.WriteString(m.styles.section.Render(title))
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(focusList, "Hasil"))
	b.WriteString("\n")

	if len(s.Reviews) == 0 {
		b.WriteString(m.styles.muted.Render(view.EmptyMessage(s.Query)))
		b.WriteString("\n")
		return b.String()
	}

	width := 0
	if m.width > 4 {
		width = min(m.width-4, 100)
	}
	for _, r := range s.Reviews {
		b.WriteString(m.renderCard(r, width))
		b.WriteString("\n")
	}

	if s.TotalPages > 1 {
		prev, next := "← Sebelumnya", "Berikutnya →"
		if !s.CanPrev() {
			prev = m.styles.disabled.Render(prev)
		}
		if !s.CanNext() {
			next = m.styles.disabled.Render(next)
		}
		b.WriteString(prev + "   " + view.PageInfo(s.Query.Page, s.TotalPages) + "   " + next)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderCard(r domain.Review, width int) string {
	var lines []string
	lines = append(lines, m.styles.product.Render(r.ProductName)+"  "+badge(r.Sentiment))
	lines = append(lines, r.ReviewText)
	lines = append(lines, m.styles.muted.Render("Keyakinan: "+view.FormatConfidence(r.Confidence)))
	if len(r.KeyPoints) > 0 {
		lines = append(lines, "🔑 Poin Utama:")
		for _, p := range r.KeyPoints {
			if width > 8 {
				p = truncate.StringWithTail(p, uint(width-8), "…")
			}
			lines = append(lines, "  • "+p)
		}
	}
	lines = append(lines, m.styles.muted.Render("📅 "+view.FormatDate(r.CreatedAt, nil)))

	card := m.styles.card
	if width > 0 {
		card = card.Width(width)
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.help.Render(strings.Join(parts, " • "))
}
