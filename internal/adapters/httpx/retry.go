// Package httpx holds the retry policy shared by the outbound model clients.
package httpx

import (
	"context"
	crand "crypto/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Retryable reports whether a status is worth another attempt:
// 429 and transient 5xx (model cold starts answer 503).
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// SleepCtx waits for d or returns early if ctx is done.
func SleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// RetryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func RetryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// Backoff returns an exponential delay (base, 2*base, 4*base...) with up to +50% jitter.
func Backoff(base time.Duration, i int) time.Duration {
	d := time.Duration(1<<i) * base
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return d
	}
	f := float64(b[0]) / 255.0
	return d + time.Duration(0.5*f*float64(d))
}
