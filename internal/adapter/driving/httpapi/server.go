// Package httpapi exposes the upload and report endpoints. Each upload gets
// its own analysis engine, addressed by a session id.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/diillson/sales-insight-go/internal/application/usecase"
	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/domain/repository"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// Server serves the sales upload API.
type Server struct {
	cfg        types.ServerConfig
	mapping    entity.ColumnMapping
	sessions   *usecase.SessionStore
	sourceRepo repository.SourceRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	metrics    *metrics
}

// NewServer creates a server. Empty settings fall back to the defaults.
func NewServer(
	cfg types.ServerConfig,
	mapping entity.ColumnMapping,
	sourceRepo repository.SourceRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *Server {
	defaults := types.DefaultServerConfig()
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.MaxUploadMB == 0 {
		cfg.MaxUploadMB = defaults.MaxUploadMB
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = defaults.AllowOrigins
	}

	return &Server{
		cfg:        cfg,
		mapping:    mapping.WithDefaults(),
		sessions:   usecase.NewSessionStore(cfg.MaxSessions),
		sourceRepo: sourceRepo,
		exportRepo: exportRepo,
		console:    console,
		metrics:    newMetrics(),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors(s.cfg.AllowOrigins))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	r.Post("/upload", s.handleUpload)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.handleAnalysis)
		r.Get("/report", s.handleReport)
		r.Delete("/", s.handleDelete)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.console.LogInfo("Listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.console.LogInfo("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
