package tui

import (
	"context"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/reviewapi"
	"review_analyzer/internal/view"
)

// API is the part of reviewapi.Client the terminal UI needs.
type API interface {
	ListReviews(ctx context.Context, params url.Values) (reviewapi.ReviewList, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Analyze(ctx context.Context, productName, reviewText string) (domain.Review, error)
}

// runEffects turns reducer effects into commands. Results come back as view events.
func (m *Model) runEffects(effs []view.Effect) tea.Cmd {
	if len(effs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effs))
	for _, e := range effs {
		cmds = append(cmds, m.effectCmd(e))
	}
	return tea.Batch(cmds...)
}

func (m *Model) effectCmd(e view.Effect) tea.Cmd {
	api, timeout := m.api, m.timeout
	switch e := e.(type) {
	case view.Schedule:
		return tea.Tick(e.After, func(time.Time) tea.Msg {
			return view.DebounceFired{Gen: e.Gen}
		})

	case view.FetchList:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			list, err := api.ListReviews(ctx, e.Params)
			if err != nil {
				log.Warn().Err(err).Uint64("seq", e.Seq).Msg("list reviews failed")
			}
			return view.ListLoaded{Seq: e.Seq, List: list, Err: err}
		}

	case view.FetchStats:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			st, err := api.Stats(ctx)
			if err != nil {
				// not shown to the user
				log.Debug().Err(err).Uint64("seq", e.Seq).Msg("fetch stats failed")
			}
			return view.StatsLoaded{Seq: e.Seq, Stats: st, Err: err}
		}

	case view.Analyze:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			rev, err := api.Analyze(ctx, e.ProductName, e.ReviewText)
			if err != nil {
				log.Warn().Err(err).Str("product", e.ProductName).Msg("analyze failed")
			} else {
				log.Info().Int64("id", rev.ID).Str("sentiment", string(rev.Sentiment)).Msg("review analyzed")
			}
			return view.Analyzed{Review: rev, Err: err}
		}
	}
	return nil
}
