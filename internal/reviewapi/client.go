// Package reviewapi is the client side of the review analyzer HTTP API.
// Each call is a single attempt; callers decide what to show on failure.
package reviewapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
)

const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout outlasts the server's own deadline for an analysis, so a slow
// analysis reports the server's answer rather than a client-side timeout.
const DefaultTimeout = 2 * time.Minute

// ErrTransport marks failures where no usable payload came back:
// network errors, timeouts and bodies that are not the expected JSON.
var ErrTransport = errors.New("transport failure")

// APIError is a payload the server produced with success=false or a non-2xx status.
// Message is the server's error text and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	base string
	hc   *http.Client
}

func New(base string, timeout time.Duration) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// ReviewList is one page of reviews as returned by GET /api/reviews.
type ReviewList struct {
	Reviews    []domain.Review `json:"reviews"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type listPayload struct {
	envelope
	Reviews    []wireReview `json:"reviews"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

type statsPayload struct {
	envelope
	domain.Stats
}

type analyzePayload struct {
	envelope
	wireReview
	Message string `json:"message"`
}

// wireReview shadows created_at so zone-less timestamps decode too.
type wireReview struct {
	domain.Review
	CreatedAt Timestamp `json:"created_at"`
}

func (w wireReview) review() domain.Review {
	r := w.Review
	r.CreatedAt = time.Time(w.CreatedAt)
	return r
}

// Timestamp accepts RFC 3339 and ISO 8601 without a zone offset, which is
// read as UTC. null and "" decode to the zero time.
type Timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			*t = Timestamp(v)
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", s)
}

type analyzeRequest struct {
	ProductName string `json:"product_name"`
	ReviewText  string `json:"review_text"`
}

// ListReviews fetches one page. params are sent verbatim as the query string.
func (c *Client) ListReviews(ctx context.Context, params url.Values) (ReviewList, error) {
	var p listPayload
	if err := c.do(ctx, http.MethodGet, "/api/reviews", params, nil, &p); err != nil {
		return ReviewList{}, err
	}
	out := ReviewList{
		Reviews:    make([]domain.Review, 0, len(p.Reviews)),
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
	for _, w := range p.Reviews {
		out.Reviews = append(out.Reviews, w.review())
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var p statsPayload
	if err := c.do(ctx, http.MethodGet, "/api/reviews/stats", nil, nil, &p); err != nil {
		return domain.Stats{}, err
	}
	return p.Stats, nil
}

// Analyze submits a review and returns the stored, analyzed record.
func (c *Client) Analyze(ctx context.Context, productName, reviewText string) (domain.Review, error) {
	body, err := json.Marshal(analyzeRequest{ProductName: productName, ReviewText: reviewText})
	if err != nil {
		return domain.Review{}, fmt.Errorf("encode request: %w", err)
	}
	var p analyzePayload
	if err := c.do(ctx, http.MethodPost, "/api/analyze-review", nil, body, &p); err != nil {
		return domain.Review{}, err
	}
	return p.review(), nil
}

// succeeded is implemented by every payload through the embedded envelope.
type succeeded interface{ result() envelope }

func (e envelope) result() envelope { return e }

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte, out succeeded) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api response")

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrTransport, path, err)
	}
	env := out.result()
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	return nil
}
