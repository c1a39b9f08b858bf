// internal/adapters/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"review_analyzer/internal/adapters/httpx"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	maxAttempts = 3
)

type Client struct {
	base      string
	model     string
	key       string
	hc        *http.Client
	rl        *rate.Limiter
	retryBase time.Duration
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
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
		rps = 2
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		model:     model,
		key:       key,
		hc:        &http.Client{Timeout: 60 * time.Second},
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
		retryBase: 500 * time.Millisecond,
	}, nil
}

// WithRetryBase shortens the backoff base; tests use it to keep retries fast.
func (c *Client) WithRetryBase(d time.Duration) *Client {
	c.retryBase = d
	return c
}

// Generate sends a single-turn prompt and returns the concatenated text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.model, url.QueryEscape(c.key))

	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		text, retry, err := c.do(ctx, endpoint, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retry || i == maxAttempts-1 {
			break
		}
		if !httpx.SleepCtx(ctx, httpx.Backoff(c.retryBase, i)) {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (c *Client) do(ctx context.Context, endpoint string, payload []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("gemini", "generate", 0, time.Since(start))
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("gemini: sending request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gemini", "generate", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", httpx.Retryable(resp.StatusCode),
			fmt.Errorf("gemini: status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(b)), domain.ErrUpstream)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, fmt.Errorf("gemini: decode: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", false, fmt.Errorf("gemini: no candidates: %w", domain.ErrUpstream)
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), false, nil
}
