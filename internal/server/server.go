// Package server exposes the calculator over a stateless HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	jarsmiddleware "github.com/theirongolddev/jars/internal/server/middleware"
)

// Config controls the API server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// WebAPI serves the jar catalogue and allocation endpoints. Every request is
// computed from its own inputs; only request counters are kept.
type WebAPI struct {
	router    *chi.Mux
	logger    *zerolog.Logger
	cfg       Config
	startedAt time.Time

	requests     atomic.Int64
	computations atomic.Int64
	overLimit    atomic.Int64
}

// NewWebAPI builds the router.
func NewWebAPI(logger zerolog.Logger, cfg Config) *WebAPI {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	api := &WebAPI{
		logger:    &logger,
		cfg:       cfg,
		startedAt: time.Now(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(jarsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(api.count)

	router.Get("/healthz", api.handleHealth)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/jars", api.ListJars)
		r.Get("/allocation", api.GetAllocation)
		r.Post("/allocation", api.PostAllocation)
		r.Get("/stats", api.Stats)
	})

	api.router = router
	return api
}

// Handler returns the HTTP handler, mainly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (w *WebAPI) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              w.cfg.Addr,
		Handler:           w.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		w.logger.Info().Str("addr", w.cfg.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			return server.Close()
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	}
}

func (w *WebAPI) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		w.requests.Add(1)
		next.ServeHTTP(rw, r)
	})
}
