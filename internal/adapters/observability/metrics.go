package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "review_analyzer"

// Cache event labels.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
	CacheSet  = "set"
	CacheDel  = "del"
	CacheIncr = "incr"
)

// Fallback stage labels.
const (
	StageSentimentStatus   = "sentiment_status"
	StageSentimentKeywords = "sentiment_keywords"
	StageKeyPointsError    = "keypoints_error"
	StageKeyPointsParse    = "keypoints_parse"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route and status."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	// Model calls are slow; buckets reach past the upstream timeout.
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "model_requests_total", Help: "Calls to sentiment and key point models."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "model_request_duration_seconds",
			Help:    "Model call duration seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Review cache hits, misses and writes."},
		[]string{"cache", "event"},
	)
	AnalysisFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "analysis_fallbacks_total", Help: "Local fallbacks taken during review analysis."},
		[]string{"stage"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents, AnalysisFallbacks}
}

// InitRegistry returns a registry holding the review analyzer collectors.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors()...)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve exposes h on a dedicated listener; an empty addr disables it.
func Serve(addr string, h http.Handler) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)

	go func() {
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		log.Info().Str("addr", addr).Msg("metrics listener started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics listener failed")
		}
	}()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one model call; status 0 means no response was received.
func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveFallback(stage string) {
	AnalysisFallbacks.WithLabelValues(stage).Inc()
}
