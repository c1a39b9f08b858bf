package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout covers an analysis, which waits on two upstream models.
const DefaultTimeout = 90 * time.Second

type Server struct{ mux *chi.Mux }

type options struct {
	timeout time.Duration
	cors    CORSConfig
}

type Option func(*options)

func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

func WithCORS(c CORSConfig) Option { return func(o *options) { o.cors = c } }

func New(opts ...Option) *Server {
	o := options{timeout: DefaultTimeout, cors: DefaultCORS}
	for _, opt := range opts {
		opt(&o)
	}

	m := chi.NewRouter()
	// middlewares must be registered before any route
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(CORS(o.cors))
	m.Use(Timeout(o.timeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches an extra handler such as /metrics.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
