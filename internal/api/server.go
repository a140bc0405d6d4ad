// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	handler "github.com/newthinker/journal/internal/api/handler/api"
	"github.com/newthinker/journal/internal/api/job"
	"github.com/newthinker/journal/internal/api/middleware"
	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/metrics"
	"github.com/newthinker/journal/internal/news"
	"github.com/newthinker/journal/internal/sentiment"
	"github.com/newthinker/journal/internal/storage/archive"
	"github.com/newthinker/journal/internal/storage/journal"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Server is the HTTP server for the trading journal
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	jobs       *job.Store
}

// Config holds server configuration
type Config struct {
	Host   string
	Port   int
	APIKey string

	DefaultTimeframe      core.Timeframe
	DefaultInitialBalance decimal.Decimal

	MetricsEnabled bool
	MetricsPath    string

	MaxJobs int
	JobTTL  time.Duration
}

// Dependencies are the collaborators the handlers serve
type Dependencies struct {
	Store    journal.Store
	Archive  archive.Storage
	Engine   *sentiment.Engine
	News     news.Provider
	Registry *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("trade store is required")
	}
	if deps.Registry == nil {
		deps.Registry = metrics.NewRegistry()
	}
	if deps.News == nil {
		deps.News = news.NewStaticProvider(nil)
	}
	if cfg.MaxJobs == 0 {
		cfg.MaxJobs = 100
	}
	if cfg.JobTTL == 0 {
		cfg.JobTTL = time.Hour
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
		jobs:   job.NewStore(cfg.MaxJobs, cfg.JobTTL),
	}
	s.httpServer = &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: middleware.Chain(mux,
			metrics.LoggingMiddleware(logger),
			metrics.HTTPMiddleware(deps.Registry),
		),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes(cfg, deps)
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	auth := middleware.APIKeyAuth(cfg.APIKey)
	protect := func(pattern string, h http.HandlerFunc) {
		s.mux.Handle(pattern, auth(h))
	}

	accounts := handler.NewAccountsHandler(deps.Store, cfg.DefaultInitialBalance, deps.Registry, s.logger)
	trades := handler.NewTradesHandler(deps.Store, deps.Registry, s.logger)
	dashboard := handler.NewDashboardHandler(deps.Store, cfg.DefaultTimeframe, deps.Registry, s.logger)
	scoring := handler.NewSentimentHandler(deps.Engine, deps.Registry)
	headlines := handler.NewNewsHandler(deps.News, news.NewScorer(deps.Engine), deps.Registry)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	protect("GET /api/accounts", accounts.List)
	protect("POST /api/accounts", accounts.Create)
	protect("GET /api/accounts/{id}", accounts.Get)

	protect("GET /api/accounts/{id}/trades", trades.List)
	protect("POST /api/accounts/{id}/trades", trades.Add)
	protect("GET /api/trades/{id}", trades.Get)
	protect("PUT /api/trades/{id}", trades.Update)
	protect("DELETE /api/trades/{id}", trades.Delete)

	protect("GET /api/accounts/{id}/dashboard", dashboard.Dashboard)
	protect("GET /api/accounts/{id}/equity", dashboard.Equity)
	protect("GET /api/accounts/{id}/daily", dashboard.Daily)

	protect("POST /api/sentiment", scoring.Score)
	protect("GET /api/news", headlines.List)

	if deps.Archive != nil {
		snapshots := handler.NewSnapshotsHandler(archive.NewArchiver(deps.Store, deps.Archive), s.jobs, deps.Registry, s.logger)
		protect("POST /api/accounts/{id}/export", snapshots.Export)
		protect("GET /api/snapshots", snapshots.List)
		protect("POST /api/snapshots/import", snapshots.Import)
		protect("GET /api/jobs", snapshots.Jobs)
		protect("GET /api/jobs/{id}", snapshots.Job)
	}

	if cfg.MetricsEnabled {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	s.mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, core.Errorf(core.ErrNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
}

// Handler returns the root handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and waits for running jobs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("shutdown deadline reached with jobs still running")
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
