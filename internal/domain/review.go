package domain

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// ParseSentiment accepts any casing of the three labels.
func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(strings.ToUpper(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive, true
	case SentimentNegative:
		return SentimentNegative, true
	case SentimentNeutral:
		return SentimentNeutral, true
	}
	return "", false
}

type Review struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	ReviewText  string    `json:"review_text"`
	Sentiment   Sentiment `json:"sentiment"`
	Confidence  float64   `json:"confidence"`
	KeyPoints   []string  `json:"key_points"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats is derived on demand; percentages are rounded to one decimal.
type Stats struct {
	Total              int     `json:"total"`
	Positive           int     `json:"positive"`
	Negative           int     `json:"negative"`
	Neutral            int     `json:"neutral"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
}
