package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/search"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine is the read side of the navigator the server needs.
type Engine interface {
	Current(state *domain.State) (domain.Node, error)
	SelectIndex(ctx context.Context, state *domain.State, i int) (*domain.State, error)
	Back(ctx context.Context, state *domain.State) *domain.State
	Reset(ctx context.Context, state *domain.State) *domain.State
	Inspect() []domain.Node
	Watch(ctx context.Context) (<-chan string, error)
}

// Sessions stores navigator sessions and applies transitions to them.
type Sessions interface {
	Create(ctx context.Context) (*domain.State, error)
	Load(ctx context.Context, sessionID string) (*domain.State, error)
	Apply(ctx context.Context, sessionID string, fn func(context.Context, *domain.State) (*domain.State, error)) (*domain.State, error)
	Delete(ctx context.Context, sessionID string) error
}

// Server serves the navigator and the documentation index over HTTP.
type Server struct {
	Engine   Engine
	Sessions Sessions
	Streams  *StreamManager

	index   ports.SearchIndex
	metrics http.Handler
	limit   int
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithIndex enables GET /search.
func WithIndex(index ports.SearchIndex) Option {
	return func(s *Server) {
		s.index = index
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithSearchLimit caps /search results when the request has no limit.
func WithSearchLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger used for request and stream logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Spec parses and validates the embedded OpenAPI document.
func Spec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler builds the router. API routes are validated against the
// embedded OpenAPI document before they reach the handlers.
func NewHandler(engine Engine, sessions Sessions, opts ...Option) (http.Handler, error) {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		Streams:  NewStreamManager(),
		limit:    search.DefaultLimit,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	doc, err := Spec()
	if err != nil {
		return nil, err
	}
	doc.Servers = nil

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(oapiMW.OapiRequestValidatorWithOptions(doc, &oapiMW.Options{
			Options: openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
			ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
				writeError(w, statusCode, message)
			},
		}))

		r.Post("/sessions", s.CreateSession)
		r.Get("/sessions/{id}", s.GetSession)
		r.Delete("/sessions/{id}", s.DeleteSession)
		r.Post("/sessions/{id}/select", s.SelectOption)
		r.Post("/sessions/{id}/back", s.GoBack)
		r.Post("/sessions/{id}/reset", s.ResetSession)
		r.Get("/graph", s.GetGraph)
		r.Get("/search", s.Search)
		r.Get("/events", s.SubscribeEvents)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "wayfinder-http",
		"version":     strings.TrimSpace(wayfinder.Version),
		"api_version": apiVersion,
	})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var defect *domain.GraphDefectError
	switch {
	case errors.As(err, &defect):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrIndexNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
