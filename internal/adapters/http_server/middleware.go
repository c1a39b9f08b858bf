package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"review_analyzer/internal/adapters/observability"
)

const timeoutBody = `{"success":false,"error":"request timed out"}`

// Timeout caps handler time; the body is the usual error envelope.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, timeoutBody) }
}

// ---- CORS ----

type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
	MaxAge       time.Duration
}

// DefaultCORS lets any browser origin call the API.
var DefaultCORS = CORSConfig{
	AllowOrigin:  "*",
	AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	AllowHeaders: "Content-Type, Authorization",
	MaxAge:       time.Hour,
}

// CORS answers preflights on any path and stamps the allow headers on every response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	maxAge := strconv.Itoa(int(cfg.MaxAge / time.Second))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Methods", cfg.AllowMethods)
			h.Set("Access-Control-Allow-Headers", cfg.AllowHeaders)
			h.Set("Access-Control-Max-Age", maxAge)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routeOf prefers the chi pattern so metrics stay low-cardinality.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func statusOf(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.ObserveHTTP(routeOf(r), r.Method, statusOf(ww), time.Since(start))
	})
}

// ---- Structured logging middleware ----

// Logger emits one http_request event per request; 5xx at error, 4xx at warn.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := statusOf(ww)
			ev := l.Info()
			switch {
			case status >= 500:
				ev = l.Error()
			case status >= 400:
				ev = l.Warn()
			}
			ev.
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("route", routeOf(r)).
				Str("method", r.Method).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote", clientIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// clientIP strips the port; RealIP has already applied forwarding headers.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
