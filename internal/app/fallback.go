package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"review_analyzer/internal/domain"
)

/********** keyword sentiment **********/

var positiveWords = []string{
	"bagus", "baik", "luar biasa", "mantap", "suka", "puas",
	"recommended", "cepat", "hebat", "good", "great", "excellent",
	"amazing", "love", "best", "perfect",
}

var negativeWords = []string{
	"buruk", "jelek", "kurang", "kecewa", "lambat", "parah",
	"cacat", "rusak", "bad", "poor", "terrible", "worst",
	"hate", "awful", "disappointing",
}

// KeywordSentiment counts which word list has more hits (substring match, each word once).
func KeywordSentiment(text string) (domain.Sentiment, float64) {
	low := strings.ToLower(text)
	pos := countHits(low, positiveWords)
	neg := countHits(low, negativeWords)
	switch {
	case pos > neg:
		return domain.SentimentPositive, math.Min(1.0, 0.6+0.1*float64(pos))
	case neg > pos:
		return domain.SentimentNegative, math.Min(1.0, 0.6+0.1*float64(neg))
	default:
		return domain.SentimentNeutral, 0.6
	}
}

func countHits(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

/********** key points **********/

var (
	fencedArray   = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")
	sentenceSplit = regexp.MustCompile(`[.!?\n]+`)
)

const keyPointFallback = "Review analyzed"

func KeyPointPrompt(text string) string {
	return fmt.Sprintf(`
Analyze this product review and extract 3-5 main key points or highlights.
Return ONLY a JSON array of strings, no markdown, no extra text.

Review: %s

Format: ["point 1", "point 2", "point 3"]
`, text)
}

// ParseKeyPoints reads a JSON string array from model output, with or without code fences.
func ParseKeyPoints(out string) ([]string, bool) {
	out = strings.TrimSpace(out)
	if strings.Contains(out, "```") {
		if m := fencedArray.FindStringSubmatch(out); m != nil {
			out = m[1]
		}
	}
	var points []string
	if err := json.Unmarshal([]byte(out), &points); err != nil {
		return nil, false
	}
	kept := points[:0]
	for _, p := range points {
		if t := strings.TrimSpace(p); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

// SentenceKeyPoints keeps the first three sentences of the text.
func SentenceKeyPoints(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return []string{keyPointFallback}
	}
	return out
}

/********** unconfigured upstreams **********/

// Disabled stands in for an upstream without credentials. Every call fails with
// a transport-class error, so the keyword and sentence fallbacks take over.
type Disabled struct{ Service string }

func (d Disabled) Classify(ctx context.Context, text string) (domain.Sentiment, float64, error) {
	return "", 0, fmt.Errorf("%s: not configured", d.Service)
}

func (d Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("%s: not configured", d.Service)
}
