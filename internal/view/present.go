package view

import (
	"time"

	"review_analyzer/internal/domain"
)

const (
	ColorPositive = "#22c55e"
	ColorNegative = "#ef4444"
	ColorNeutral  = "#f59e0b"
	ColorUnknown  = "#6b7280"
)

// DateLayout mirrors the id-ID locale rendering, e.g. 05/03/2024 14.07.09.
const DateLayout = "02/01/2006 15.04.05"

func SentimentColor(s domain.Sentiment) string {
	switch s {
	case domain.SentimentPositive:
		return ColorPositive
	case domain.SentimentNegative:
		return ColorNegative
	case domain.SentimentNeutral:
		return ColorNeutral
	default:
		return ColorUnknown
	}
}

// SentimentLabel localizes the three known labels and passes anything else through.
func SentimentLabel(s domain.Sentiment) string {
	switch s {
	case domain.SentimentPositive:
		return "Positif"
	case domain.SentimentNegative:
		return "Negatif"
	case domain.SentimentNeutral:
		return "Netral"
	default:
		return string(s)
	}
}

// FormatDate renders t in loc; nil loc means local time.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

func FilterLabel(f Filter) string {
	switch f {
	case FilterPositive:
		return "Positif"
	case FilterNegative:
		return "Negatif"
	case FilterNeutral:
		return "Netral"
	default:
		return "Semua Sentimen"
	}
}

func SortLabel(k domain.SortKey) string {
	switch k {
	case domain.SortCreatedAtAsc:
		return "Terlama"
	case domain.SortConfidenceDesc:
		return "Keyakinan Tertinggi"
	case domain.SortConfidenceAsc:
		return "Keyakinan Terendah"
	default:
		return "Terbaru"
	}
}
