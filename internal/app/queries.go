package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"review_analyzer/internal/domain"
)

const (
	reviewsGenKey   = "reviews:gen"
	maxCachedPageSz = 1_000_000
)

type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListReviews(ctx context.Context, q domain.ListQuery) (domain.ReviewsPage, error) {
	q = q.Normalize()

	key := reviewsKey(s.generation(ctx), q)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	items, total, err := s.repo.ListReviews(ctx, q)
	if err != nil {
		return domain.ReviewsPage{}, fmt.Errorf("list reviews: %w", err)
	}
	out = domain.ReviewsPage{
		Items:      copyReviews(items),
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: domain.TotalPages(total, q.PageSize),
	}

	// optional size guard
	if b, _ := json.Marshal(out); len(b) < maxCachedPageSz {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Stats snapshots are keyed by generation like list pages, so a count taken
// before a concurrent insert lands under the old generation and is never read.
func (s *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	key := statsKey(s.generation(ctx))
	var st domain.Stats
	if ok, _ := s.cache.Get(ctx, key, &st); ok {
		return st, nil
	}

	counts, err := s.repo.CountBySentiment(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count reviews: %w", err)
	}
	st = BuildStats(counts)
	_ = s.cache.Set(ctx, key, st, int(s.cacheTTL.Seconds()))
	return st, nil
}

// BuildStats derives totals and one-decimal percentages from per-sentiment counts.
func BuildStats(counts map[domain.Sentiment]int) domain.Stats {
	st := domain.Stats{
		Positive: counts[domain.SentimentPositive],
		Negative: counts[domain.SentimentNegative],
		Neutral:  counts[domain.SentimentNeutral],
	}
	for _, n := range counts {
		st.Total += n
	}
	if st.Total > 0 {
		st.PositivePercentage = percent(st.Positive, st.Total)
		st.NegativePercentage = percent(st.Negative, st.Total)
		st.NeutralPercentage = percent(st.Neutral, st.Total)
	}
	return st
}

func percent(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}

// generation is bumped on every insert so cached pages from before are never read again.
func (s *QueryService) generation(ctx context.Context) int64 {
	var gen int64
	_, _ = s.cache.Get(ctx, reviewsGenKey, &gen)
	return gen
}

func statsKey(gen int64) string { return fmt.Sprintf("reviews:stats:%d", gen) }

func reviewsKey(gen int64, q domain.ListQuery) string {
	sent := ""
	if q.Sentiment != nil {
		sent = string(*q.Sentiment)
	}
	return fmt.Sprintf("reviews:%d:%s:%s:%d:%d:%s", gen, sent, q.ProductName, q.Page, q.PageSize, q.Sort)
}

func copyReviews(in []domain.Review) []domain.Review {
	out := make([]domain.Review, len(in))
	for i, r := range in {
		r.KeyPoints = append([]string{}, r.KeyPoints...)
		out[i] = r
	}
	return out
}
