// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
)

type ReviewQueries interface {
	ListReviews(ctx context.Context, q domain.ListQuery) (domain.ReviewsPage, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type ReviewAnalyzer interface {
	Analyze(ctx context.Context, productName, reviewText string) (domain.Review, error)
}

type Handlers struct {
	Q ReviewQueries
	A ReviewAnalyzer
}

// maxAnalyzeBody bounds the analyze request body.
const maxAnalyzeBody = 1 << 20

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.home)
	s.mux.Post("/api/analyze-review", h.analyzeReview)
	s.mux.Get("/api/reviews", h.listReviews)
	s.mux.Get("/api/reviews/stats", h.reviewStats)
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type reviewBody struct {
	ID          int64            `json:"id"`
	ProductName string           `json:"product_name"`
	ReviewText  string           `json:"review_text"`
	Sentiment   domain.Sentiment `json:"sentiment"`
	Confidence  float64          `json:"confidence"`
	KeyPoints   []string         `json:"key_points"`
	CreatedAt   string           `json:"created_at"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	reviewBody
	Message string `json:"message"`
}

type listResponse struct {
	Success    bool         `json:"success"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	Reviews    []reviewBody `json:"reviews"`
}

type statsResponse struct {
	Success bool `json:"success"`
	domain.Stats
}

func toBody(r domain.Review) reviewBody {
	kp := r.KeyPoints
	if kp == nil {
		kp = []string{}
	}
	return reviewBody{
		ID:          r.ID,
		ProductName: r.ProductName,
		ReviewText:  r.ReviewText,
		Sentiment:   r.Sentiment,
		Confidence:  r.Confidence,
		KeyPoints:   kp,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Success: false, Error: msg})
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"project": "Product Review Analyzer API",
		"version": "1.0",
		"endpoints": map[string]string{
			"POST /api/analyze-review": "Analyze new product review",
			"GET /api/reviews":         "Get all reviews with optional filters",
			"GET /api/reviews/stats":   "Get review statistics",
		},
	})
}

func (h *Handlers) analyzeReview(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductName string `json:"product_name"`
		ReviewText  string `json:"review_text"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	rv, err := h.A.Analyze(r.Context(), in.ProductName, in.ReviewText)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Missing required fields: product_name, review_text")
			return
		}
		log.Error().Err(err).Msg("analyze review failed")
		writeError(w, http.StatusInternalServerError, "Error analyzing review: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:    true,
		reviewBody: toBody(rv),
		Message:    "Review analyzed successfully",
	})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.Q.ListReviews(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("list reviews failed")
		writeError(w, http.StatusInternalServerError, "Error fetching reviews: "+err.Error())
		return
	}

	out := listResponse{
		Success:    true,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Reviews:    make([]reviewBody, 0, len(page.Items)),
	}
	for _, rv := range page.Items {
		out.Reviews = append(out.Reviews, toBody(rv))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) reviewStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("review stats failed")
		writeError(w, http.StatusInternalServerError, "Error fetching stats: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Stats: st})
}

// parseListQuery reads filters, paging and sort. Unparseable paging falls back
// to page 1 / size 10 together; an unknown sentiment is a client error.
func parseListQuery(r *http.Request) (domain.ListQuery, error) {
	v := r.URL.Query()
	q := domain.ListQuery{
		ProductName: v.Get("product_name"),
		Sort:        domain.ParseSortKey(v.Get("sort")),
		Page:        domain.DefaultPage,
		PageSize:    domain.DefaultPageSize,
	}

	if s := v.Get("sentiment"); s != "" {
		sent, ok := domain.ParseSentiment(s)
		if !ok {
			return domain.ListQuery{}, errors.New("Invalid sentiment filter: " + s)
		}
		q.Sentiment = &sent
	}

	page, perr := atoiDefault(v.Get("page"), domain.DefaultPage)
	size, serr := atoiDefault(v.Get("page_size"), domain.DefaultPageSize)
	if perr == nil && serr == nil {
		q.Page, q.PageSize = page, size
	}
	return q.Normalize(), nil
}

func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
