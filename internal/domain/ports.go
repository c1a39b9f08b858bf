package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream marks a remote service that answered with a non-success status.
	ErrUpstream = errors.New("upstream returned non-success status")
)

type ReviewRepository interface {
	// Write paths
	InsertReview(ctx context.Context, r Review) (Review, error)

	// Read paths
	ListReviews(ctx context.Context, q ListQuery) ([]Review, int, error)
	CountBySentiment(ctx context.Context) (map[Sentiment]int, error)
}

// SentimentAnalyzer classifies review text. Implementations return ErrUpstream
// (wrapped) when the remote model answered but not successfully.
type SentimentAnalyzer interface {
	Classify(ctx context.Context, text string) (Sentiment, float64, error)
}

// KeyPointExtractor returns the raw model output for a key-point prompt.
type KeyPointExtractor interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}
