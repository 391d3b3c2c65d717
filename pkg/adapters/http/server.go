package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/algebra"
	"github.com/aretw0/algebra/pkg/codec"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes bounds the size of a request document.
const DefaultMaxBodyBytes = 1 << 20

// Engine defines what the server needs from the reduction core.
type Engine interface {
	ports.Engine
	Numeric() numeric.Context
	Registry() *registry.Registry
	Precision() uint
	Mode() algebra.Mode
}

// Server serves reductions over HTTP.
type Server struct {
	Engine       Engine
	Logger       *slog.Logger
	MaxBodyBytes int64
	metrics      http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// ReduceRequest is the body of POST /reduce.
type ReduceRequest struct {
	Expression any `json:"expression"`
}

// ReduceResponse is returned by POST /reduce.
type ReduceResponse struct {
	Result codec.Document `json:"result"`
	Text   string         `json:"text"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:       engine,
		Logger:       slog.Default(),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Post("/reduce", server.Reduce)
	r.Get("/rules", server.GetRules)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Reduce handles the POST /reduce request.
func (s *Server) Reduce(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		s.fail(w, http.StatusRequestEntityTooLarge, "request body too large")
		s.Logger.Warn("Reduce: Input rejected", "error", err, "limit", s.MaxBodyBytes)
		return
	}

	expr, err := s.parse(data)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		s.Logger.Warn("Reduce: Invalid request body", "error", err)
		return
	}

	out, err := s.Engine.Reduce(r.Context(), expr)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrMalformed), errors.Is(err, domain.ErrUnknownTag):
			status = http.StatusBadRequest
		case errors.Is(err, algebra.ErrReductionFailed):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
		}
		s.fail(w, status, err.Error())
		s.Logger.Error("Reduce failed", "error", err)
		return
	}

	s.respond(w, http.StatusOK, ReduceResponse{
		Result: codec.Encode(out),
		Text:   out.String(),
	})
}

func (s *Server) parse(data []byte) (*domain.Node, error) {
	v, err := codec.Unmarshal(data, codec.FormatJSON)
	if err != nil {
		return nil, err
	}
	body, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: request must be an object", codec.ErrInvalidDocument)
	}
	expr, ok := body["expression"]
	if !ok {
		return nil, fmt.Errorf("%w: missing expression", codec.ErrInvalidDocument)
	}
	return codec.Decode(expr, s.Engine.Numeric())
}

// GetRules handles the GET /rules request.
func (s *Server) GetRules(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.Engine.Registry().Describe())
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]any{
		"app":       "algebra-http",
		"version":   strings.TrimSpace(algebra.Version),
		"precision": s.Engine.Precision(),
		"mode":      string(s.Engine.Mode()),
	})
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, ErrorResponse{Error: msg})
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
