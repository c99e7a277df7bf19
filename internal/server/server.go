// Package server implements the stlcheck HTTP API using chi.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/stlcheck/internal/config"
	"github.com/philipparndt/stlcheck/internal/history"
	"github.com/philipparndt/stlcheck/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// NewRouter creates a chi router with all routes mounted.
// store may be nil, in which case the report endpoints answer 503.
func NewRouter(cfg config.HTTPConfig, store *history.Store) chi.Router {
	h := NewHandler(store, cfg.MaxUploadBytes())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger.Log))
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.Ping)
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(CORS(cfg.AllowedOrigins))
		r.Post("/analyze", h.Analyze)
		r.Get("/reports", h.ListReports)
		r.Get("/reports/{checksum}", h.GetReport)
	})

	return r
}

// Run serves the API until ctx is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, cfg *config.Config) error {
	var store *history.Store
	if cfg.History.Enabled {
		var err error
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("init history: %w", err)
		}
		defer store.Close()
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           NewRouter(cfg.HTTP, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting",
		zap.String("http_address", cfg.HTTP.Address()),
		zap.Bool("history", cfg.History.Enabled),
		zap.Int("max_upload_mb", cfg.HTTP.MaxUploadMB),
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
