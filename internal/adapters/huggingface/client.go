// internal/adapters/huggingface/client.go
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"review_analyzer/internal/adapters/httpx"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "distilbert-base-uncased-finetuned-sst-2-english"

	maxAttempts = 4
)

type Client struct {
	base      string
	model     string
	hc        *http.Client
	key       string
	rl        *rate.Limiter
	retryBase time.Duration
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func New(base, key, model string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		model:     model,
		hc:        &http.Client{Timeout: 30 * time.Second},
		key:       key,
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
		retryBase: 200 * time.Millisecond,
	}, nil
}

// WithRetryBase shortens the backoff base; tests use it to keep retries fast.
func (c *Client) WithRetryBase(d time.Duration) *Client {
	c.retryBase = d
	return c
}

// Classify returns the top-scoring label mapped onto the three sentiments.
// A non-success answer from the API is reported as domain.ErrUpstream.
func (c *Client) Classify(ctx context.Context, text string) (domain.Sentiment, float64, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return "", 0, err
	}
	raw, err := c.post(ctx, fmt.Sprintf("%s/models/%s", c.base, c.model), body)
	if err != nil {
		return "", 0, err
	}
	preds, err := decodePredictions(raw)
	if err != nil {
		return "", 0, fmt.Errorf("huggingface: decode: %w", err)
	}
	if len(preds) == 0 {
		return "", 0, fmt.Errorf("huggingface: empty prediction list: %w", domain.ErrUpstream)
	}
	top := preds[0]
	for _, p := range preds[1:] {
		if p.Score > top.Score {
			top = p
		}
	}
	return MapLabel(top.Label), top.Score, nil
}

// MapLabel maps model labels (POSITIVE, negative, LABEL_POSITIVE...) onto the enum.
func MapLabel(label string) domain.Sentiment {
	up := strings.ToUpper(label)
	switch {
	case strings.Contains(up, "POSITIVE"):
		return domain.SentimentPositive
	case strings.Contains(up, "NEGATIVE"):
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// decodePredictions accepts both [[{...}]] (batched) and [{...}] shapes.
func decodePredictions(raw []byte) ([]prediction, error) {
	var nested [][]prediction
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []prediction
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// post performs a POST with client-side rate limiting and retries on 429/5xx,
// honoring Retry-After when provided.
func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("huggingface", "classify", 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("huggingface: %w", err)
			if i < maxAttempts-1 && httpx.SleepCtx(ctx, httpx.Backoff(c.retryBase, i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr
		}
		observability.ObserveExternal("huggingface", "classify", resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			return b, err

		case httpx.Retryable(resp.StatusCode):
			wait := httpx.RetryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = httpx.Backoff(c.retryBase, i)
			}
			lastErr = fmt.Errorf("huggingface: remote %d: %w", resp.StatusCode, domain.ErrUpstream)
			if i < maxAttempts-1 && httpx.SleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("huggingface: bad status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(b)), domain.ErrUpstream)
		}
	}
	if lastErr == nil {
		lastErr = errors.New("huggingface: no attempt made")
	}
	return nil, lastErr
}
