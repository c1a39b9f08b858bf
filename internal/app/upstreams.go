package app

import (
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/gemini"
	"review_analyzer/internal/adapters/huggingface"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
)

// Upstreams builds the model clients from config, substituting Disabled for
// any service whose client cannot be constructed.
func Upstreams(cfg shared.Config) (domain.SentimentAnalyzer, domain.KeyPointExtractor) {
	var (
		sa domain.SentimentAnalyzer = Disabled{Service: "huggingface"}
		kp domain.KeyPointExtractor = Disabled{Service: "gemini"}
	)
	if hf, err := huggingface.New(cfg.HFBaseURL, cfg.HFKey, cfg.HFModel, cfg.HFRPS); err != nil {
		log.Warn().Err(err).Msg("huggingface client disabled")
	} else {
		sa = hf
	}
	if gm, err := gemini.New(cfg.GeminiBaseURL, cfg.GeminiKey, cfg.GeminiModel, cfg.GeminiRPS); err != nil {
		log.Warn().Err(err).Msg("gemini client disabled")
	} else {
		kp = gm
	}
	return sa, kp
}
