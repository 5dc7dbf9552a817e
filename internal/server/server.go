// Package server provides the HTTP REST API for resume and job-description analysis.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/placement-matcher/internal/analysis"
	"github.com/jonathan/placement-matcher/internal/config"
	"github.com/jonathan/placement-matcher/internal/db"
	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/schemas"
	"github.com/jonathan/placement-matcher/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	engine        *analysis.Engine
	store         AnalysisStore
	closeStore    func()
	rateLimiter   *ratelimit.Limiter
	maxInputBytes int64
	defaultRole   string
}

// Config holds server configuration
type Config struct {
	Port          int
	DatabaseURL   string // Optional; without it analyses are not persisted
	MaxInputBytes int
	DefaultRole   string
	Lexicon       *lexicon.Lexicon // Defaults to the built-in lexicon
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	lex := cfg.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	engine, err := analysis.New(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis engine: %w", err)
	}

	var store AnalysisStore
	closeStore := func() {}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		store = database
		closeStore = database.Close
	} else {
		slog.Warn("DATABASE_URL not set; analyses will not be persisted")
	}

	s := newServer(engine, store, ratelimit.NewLimiter(ratelimit.LoadConfig()), cfg)
	s.closeStore = closeStore
	return s, nil
}

// newServer wires routes and middleware around an engine and an optional store.
func newServer(engine *analysis.Engine, store AnalysisStore, limiter *ratelimit.Limiter, cfg Config) *Server {
	maxInput := int64(cfg.MaxInputBytes)
	if maxInput <= 0 {
		maxInput = config.DefaultMaxInputBytes
	}

	s := &Server{
		engine:        engine,
		store:         store,
		closeStore:    func() {},
		rateLimiter:   limiter,
		maxInputBytes: maxInput,
		defaultRole:   cfg.DefaultRole,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/lexicon", s.handleLexicon)

	mux.HandleFunc("POST /v1/resumes/analyze", s.handleAnalyzeResume)
	mux.HandleFunc("POST /v1/resumes/analyze-file", s.handleAnalyzeResumeFile)
	mux.HandleFunc("POST /v1/job-descriptions/analyze", s.handleAnalyzeJD)
	mux.HandleFunc("POST /v1/job-descriptions/match", s.handleMatchJD)

	mux.HandleFunc("GET /v1/analyses/{id}", s.handleGetAnalysis)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the server's root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", s.httpServer.Addr, "persistence", s.store != nil)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.cleanup()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.cleanup()
	slog.Info("server stopped")
	return nil
}

func (s *Server) cleanup() {
	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.closeStore()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
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

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	database := "disabled"
	if s.store != nil {
		database = "connected"
		if err := s.store.Ping(r.Context()); err != nil {
			slog.Warn("health check database ping failed", "error", err)
			database = "unreachable"
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "database": database})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status code and writes it. Schema failures include field details.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		s.errorResponse(w, status, "internal error")
		return
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		details := make([]map[string]string, len(schemaErr.Errors))
		for i, fe := range schemaErr.Errors {
			details[i] = map[string]string{"field": fe.Field, "message": fe.Message}
		}
		s.jsonResponse(w, status, map[string]any{"error": "request does not match schema", "details": details})
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	slog.Warn("rate limit exceeded", "limit", info.Limit, "remaining", info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
