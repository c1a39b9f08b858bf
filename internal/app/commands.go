package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

type AnalysisService struct {
	sentiment domain.SentimentAnalyzer
	keypoints domain.KeyPointExtractor
	repo      domain.ReviewRepository
	cache     domain.Cache
	now       func() time.Time
}

func NewAnalysisService(sa domain.SentimentAnalyzer, kp domain.KeyPointExtractor, r domain.ReviewRepository, cache domain.Cache) *AnalysisService {
	return &AnalysisService{sentiment: sa, keypoints: kp, repo: r, cache: cache, now: time.Now}
}

// Analyze classifies and summarizes one review, stores it and returns the stored row.
// Upstream failures never fail the call; each stage has a local fallback.
func (s *AnalysisService) Analyze(ctx context.Context, productName, reviewText string) (domain.Review, error) {
	productName = strings.TrimSpace(productName)
	reviewText = strings.TrimSpace(reviewText)
	if productName == "" || reviewText == "" {
		return domain.Review{}, fmt.Errorf("%w: missing required fields: product_name, review_text", domain.ErrInvalidInput)
	}

	var (
		sentiment  domain.Sentiment
		confidence float64
		keyPoints  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sentiment, confidence = s.classify(gctx, reviewText)
		return nil
	})
	g.Go(func() error {
		keyPoints = s.extractKeyPoints(gctx, reviewText)
		return nil
	})
	_ = g.Wait()

	saved, err := s.repo.InsertReview(ctx, domain.Review{
		ProductName: productName,
		ReviewText:  reviewText,
		Sentiment:   sentiment,
		Confidence:  confidence,
		KeyPoints:   keyPoints,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}

	if s.cache != nil {
		s.invalidate(ctx)
	}
	return saved, nil
}

func (s *AnalysisService) classify(ctx context.Context, text string) (domain.Sentiment, float64) {
	label, score, err := s.sentiment.Classify(ctx, text)
	if err == nil {
		return label, score
	}
	if errors.Is(err, domain.ErrUpstream) {
		log.Warn().Err(err).Msg("sentiment upstream failed; defaulting to neutral")
		observability.ObserveFallback(observability.StageSentimentStatus)
		return domain.SentimentNeutral, 0.5
	}
	log.Warn().Err(err).Msg("sentiment call failed; using keyword fallback")
	observability.ObserveFallback(observability.StageSentimentKeywords)
	return KeywordSentiment(text)
}

func (s *AnalysisService) extractKeyPoints(ctx context.Context, text string) []string {
	out, err := s.keypoints.Generate(ctx, KeyPointPrompt(text))
	if err != nil {
		log.Warn().Err(err).Msg("key point extraction failed; splitting sentences")
		observability.ObserveFallback(observability.StageKeyPointsError)
		return SentenceKeyPoints(text)
	}
	if kp, ok := ParseKeyPoints(out); ok {
		return kp
	}
	log.Debug().Str("output", out).Msg("unparseable key point output; splitting sentences")
	observability.ObserveFallback(observability.StageKeyPointsParse)
	return SentenceKeyPoints(text)
}

// invalidate moves list pages and stats snapshots to a new generation.
func (s *AnalysisService) invalidate(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, reviewsGenKey); err != nil {
		log.Warn().Err(err).Msg("reviews cache generation bump failed")
	}
}
