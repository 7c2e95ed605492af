package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/portico/api"
	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/imaging"
	"github.com/aretw0/portico/pkg/session"
	"github.com/aretw0/portico/pkg/ticker"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server -o api.gen.go ../../../api/openapi.yaml

// Server serves the wizard, image and ticker APIs.
type Server struct {
	Sessions *session.Manager
	Resolver *imaging.Resolver
	Feeds    ticker.Catalog
	Streams  *StreamManager

	logger     *slog.Logger
	gatherer   prometheus.Gatherer
	version    string
	apiVersion string
	corsOrigin string
	validate   bool
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithFeeds replaces the default ticker catalog.
func WithFeeds(feeds ticker.Catalog) Option {
	return func(s *Server) {
		s.Feeds = feeds
	}
}

// WithMetrics exposes g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the build version reported at /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithoutRequestValidation skips checking requests against the OpenAPI document.
func WithoutRequestValidation() Option {
	return func(s *Server) {
		s.validate = false
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(sessions *session.Manager, resolver *imaging.Resolver, opts ...Option) (http.Handler, error) {
	s := &Server{
		Sessions:   sessions,
		Resolver:   resolver,
		Feeds:      ticker.DefaultCatalog(),
		Streams:    NewStreamManager(),
		logger:     logging.NewNop(),
		version:    "dev",
		corsOrigin: "*",
		validate:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	doc, err := api.Load(context.Background())
	if err != nil {
		return nil, err
	}
	s.apiVersion = doc.Info.Version

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.validate {
		validator, err := requestValidator(doc, s.logger)
		if err != nil {
			return nil, err
		}
		r.Use(validator)
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(api.Raw())
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		},
	})

	return s.enableCORS(r), nil
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	if s.corsOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth reports liveness.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo reports build and API versions.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "portico",
		"version":     s.version,
		"api_version": s.apiVersion,
	})
}
