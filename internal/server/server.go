package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"senti/config"
	"senti/internal/port"
	"senti/internal/usecase"
)

// Server is the dashboard backend. The presentation layer (the dashboard
// UI) is a separate origin; this server only speaks JSON and CSV.
type Server struct {
	mux        *http.ServeMux
	httpServer *http.Server

	analyze  *usecase.AnalyzeUseCase
	batch    *usecase.BatchUseCase
	report   *usecase.ReportUseCase
	identity port.Identity // nil when auth is disabled
	logger   *zap.Logger
	cfg      config.ServerConfig
}

// New creates a Server. identity may be nil, which disables the auth
// endpoints and the bearer-token middleware.
func New(
	cfg config.ServerConfig,
	analyze *usecase.AnalyzeUseCase,
	batch *usecase.BatchUseCase,
	report *usecase.ReportUseCase,
	identity port.Identity,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mux:      http.NewServeMux(),
		analyze:  analyze,
		batch:    batch,
		report:   report,
		identity: identity,
		logger:   logger,
		cfg:      cfg,
	}
	s.routes()

	handler := s.withRequestLog(s.mux)
	if cfg.EnableCORS {
		handler = s.withCORS(handler)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	s.mux.Handle("POST /api/analyze", s.withAuth(http.HandlerFunc(s.handleAnalyze)))
	s.mux.Handle("POST /api/batch", s.withAuth(http.HandlerFunc(s.handleBatch)))
	s.mux.Handle("GET /api/results", s.withAuth(http.HandlerFunc(s.handleResults)))
	s.mux.Handle("GET /api/results/{id}", s.withAuth(http.HandlerFunc(s.handleResult)))
	s.mux.Handle("GET /api/summary", s.withAuth(http.HandlerFunc(s.handleSummary)))
	s.mux.Handle("GET /api/export", s.withAuth(http.HandlerFunc(s.handleExport)))
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
