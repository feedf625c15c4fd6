// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     mockapi
// Description: chi router serving the telemetry endpoints for local development
// Author:      Mike Stoffels
// Created:     2026-09-17
// License:     MIT
// ============================================================================

package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/msto63/wachturm/pkg/core/health"
	"github.com/msto63/wachturm/pkg/core/version"
	"go.uber.org/zap"
)

// Config holds mock backend configuration
type Config struct {
	// Retention is the number of records kept
	Retention int

	// EmitInterval is the pause between generated records; 0 disables generation
	EmitInterval time.Duration

	// Seed for the generator
	Seed int64

	// Logger, defaults to a no-op logger
	Logger *zap.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Retention:    500,
		EmitInterval: 250 * time.Millisecond,
		Seed:         time.Now().UnixNano(),
	}
}

// Server is the mock telemetry backend
type Server struct {
	cfg    Config
	store  *Store
	gen    *Generator
	router chi.Router
	health *health.Registry
	logger *zap.Logger
}

// NewServer creates a server with an empty store
func NewServer(cfg Config) *Server {
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultConfig().Retention
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		store:  NewStore(cfg.Retention),
		gen:    NewGenerator(cfg.Seed),
		router: chi.NewRouter(),
		health: health.NewRegistry("mock-api", version.ComponentVersion("mock-api")),
		logger: logger,
	}
	s.health.Register(health.NewChecker("store", func(ctx context.Context) health.CheckResult {
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Details: map[string]any{"records": s.store.Len(), "retention": cfg.Retention},
		}
	}))

	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		report := s.health.Check(r.Context())
		code := http.StatusOK
		if !report.Healthy() {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, report)
	})

	s.router.Route("/logs/intruder", func(r chi.Router) {
		r.Get("/", s.handleList(nil))
		r.Post("/", s.handleCreate)
		r.Get("/port/{port}", s.handleList(func(r *http.Request) func(Record) bool {
			v := chi.URLParam(r, "port")
			return func(rec Record) bool { return rec.Port == v }
		}))
		r.Get("/source/{ip}", s.handleList(func(r *http.Request) func(Record) bool {
			v := chi.URLParam(r, "ip")
			return func(rec Record) bool { return rec.Source == v }
		}))
		r.Get("/type/{type}", s.handleList(func(r *http.Request) func(Record) bool {
			v := chi.URLParam(r, "type")
			return func(rec Record) bool { return strings.EqualFold(rec.Type, v) }
		}))
	})

	s.router.Get("/node", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.gen.Node())
	})

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Health returns the registry behind /health
func (s *Server) Health() *health.Registry {
	return s.health
}

// Store returns the record store
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) handleList(matcher func(*http.Request) func(Record) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var match func(Record) bool
		if matcher != nil {
			match = matcher(r)
		}
		writeJSON(w, http.StatusOK, s.store.Query(match))
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record: "+err.Error())
		return
	}
	if rec.Time == "" {
		rec.Time = time.Now().Format("2006-01-02 15:04:05")
	}
	writeJSON(w, http.StatusCreated, s.store.Add(rec))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Generate adds a generated record every EmitInterval until ctx is done
func (s *Server) Generate(ctx context.Context) {
	if s.cfg.EmitInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.EmitInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.store.Add(s.gen.Record())
		}
	}
}

// ListenAndServe serves on addr and generates records until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.Generate(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock api: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("mock api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
