package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/domain"
)

type fakeQueries struct {
	got   domain.ListQuery
	page  domain.ReviewsPage
	stats domain.Stats
	err   error
}

func (f *fakeQueries) ListReviews(ctx context.Context, q domain.ListQuery) (domain.ReviewsPage, error) {
	f.got = q
	return f.page, f.err
}

func (f *fakeQueries) Stats(ctx context.Context) (domain.Stats, error) { return f.stats, f.err }

type fakeAnalyzer struct {
	product, text string
	err           error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, productName, reviewText string) (domain.Review, error) {
	f.product, f.text = productName, reviewText
	if f.err != nil {
		return domain.Review{}, f.err
	}
	return domain.Review{
		ID: 7, ProductName: productName, ReviewText: reviewText,
		Sentiment: domain.SentimentPositive, Confidence: 0.873,
		KeyPoints: []string{"fast"},
		CreatedAt: time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC),
	}, nil
}

func newServer(q *fakeQueries, a *fakeAnalyzer) http.Handler {
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q, A: a})
	return srv.Mux()
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out map[string]any
	if rr.Body.Len() > 0 && strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr, out
}

func TestAnalyzeReview_Success(t *testing.T) {
	a := &fakeAnalyzer{}
	rr, out := do(t, newServer(&fakeQueries{}, a), "POST", "/api/analyze-review", `{"product_name":"Mouse","review_text":"fast"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "POSITIVE", out["sentiment"])
	assert.Equal(t, 0.873, out["confidence"])
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, "2025-03-01T08:30:00Z", out["created_at"])
	assert.Equal(t, []any{"fast"}, out["key_points"])
	assert.Equal(t, "Mouse", a.product)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeReview_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
		msg    string
	}{
		{"bad json", `{`, nil, 400, "Invalid JSON body"},
		{"missing fields", `{"product_name":" "}`, fmt.Errorf("x: %w", domain.ErrInvalidInput), 400, "Missing required fields: product_name, review_text"},
		{"storage", `{"product_name":"a","review_text":"b"}`, errors.New("db down"), 500, "Error analyzing review: db down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, out := do(t, newServer(&fakeQueries{}, &fakeAnalyzer{err: tc.err}), "POST", "/api/analyze-review", tc.body)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tc.msg, out["error"])
		})
	}
}

func TestListReviews_ParsesQuery(t *testing.T) {
	q := &fakeQueries{page: domain.ReviewsPage{
		Items:      []domain.Review{{ID: 1, ProductName: "iPhone", Sentiment: domain.SentimentNegative}},
		Total:      21,
		Page:       3,
		PageSize:   10,
		TotalPages: 3,
	}}
	rr, out := do(t, newServer(q, &fakeAnalyzer{}), "GET", "/api/reviews?sentiment=negative&product_name=iph&page=3&page_size=10&sort=confidence_asc", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, q.got.Sentiment)
	assert.Equal(t, domain.SentimentNegative, *q.got.Sentiment)
	assert.Equal(t, "iph", q.got.ProductName)
	assert.Equal(t, 3, q.got.Page)
	assert.Equal(t, domain.SortConfidenceAsc, q.got.Sort)

	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(3), out["total_pages"])
	assert.Equal(t, float64(21), out["total"])
	reviews := out["reviews"].([]any)
	require.Len(t, reviews, 1)
	assert.Equal(t, []any{}, reviews[0].(map[string]any)["key_points"])
}

func TestListReviews_PagingFallbacks(t *testing.T) {
	q := &fakeQueries{}
	h := newServer(q, &fakeAnalyzer{})

	do(t, h, "GET", "/api/reviews?page=abc&page_size=20", "")
	assert.Equal(t, 1, q.got.Page)
	assert.Equal(t, 10, q.got.PageSize)

	do(t, h, "GET", "/api/reviews?page=0&page_size=500&sort=bogus", "")
	assert.Equal(t, 1, q.got.Page)
	assert.Equal(t, 10, q.got.PageSize)
	assert.Equal(t, domain.SortCreatedAtDesc, q.got.Sort)
	assert.Nil(t, q.got.Sentiment)
}

func TestListReviews_InvalidSentiment(t *testing.T) {
	rr, out := do(t, newServer(&fakeQueries{}, &fakeAnalyzer{}), "GET", "/api/reviews?sentiment=happy", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "happy")
}

func TestListReviews_RepoError(t *testing.T) {
	rr, out := do(t, newServer(&fakeQueries{err: errors.New("boom")}, &fakeAnalyzer{}), "GET", "/api/reviews", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error fetching reviews: boom", out["error"])
}

func TestReviewStats(t *testing.T) {
	q := &fakeQueries{stats: domain.Stats{Total: 4, Positive: 3, Neutral: 1, PositivePercentage: 75, NeutralPercentage: 25}}
	rr, out := do(t, newServer(q, &fakeAnalyzer{}), "GET", "/api/reviews/stats", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(4), out["total"])
	assert.Equal(t, float64(75), out["positive_percentage"])
	assert.Equal(t, float64(0), out["negative"])
}

func TestPreflightAndHome(t *testing.T) {
	h := newServer(&fakeQueries{}, &fakeAnalyzer{})

	rr, _ := do(t, h, "OPTIONS", "/api/analyze-review", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "3600", rr.Header().Get("Access-Control-Max-Age"))

	rr, out := do(t, h, "GET", "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Product Review Analyzer API", out["project"])

	rr, _ = do(t, h, "GET", "/healthz", "")
	assert.Equal(t, "ok", rr.Body.String())
}
