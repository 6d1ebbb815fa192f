// Package httpapi exposes the favorites API over HTTP and provides a client for it.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

// FavoritesPath is the collection route of the favorites API.
const FavoritesPath = "/api/v1/favorites"

// Server is the favorites REST API server.
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	logger     *slog.Logger
}

// NewServer creates a server that serves api on cfg.Addr.
func NewServer(cfg config.ServerConfig, api ports.FavoritesAPI, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "http_server")

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Addr,
			Handler: NewRouter(cfg, api, logger),
		},
		cfg:    cfg,
		logger: logger,
	}
}

// NewRouter builds the routes and middleware stack. A nil logger discards request logs.
func NewRouter(cfg config.ServerConfig, api ports.FavoritesAPI, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	handlers := newFavoritesHandlers(api)

	r := chi.NewRouter()
	r.Use(LoggerMiddleware(logger), middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route(FavoritesPath, func(r chi.Router) {
		r.Get("/", handlers.list)
		r.Post("/", handlers.create)
		r.Delete("/{id}", handlers.remove)
	})

	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting REST API server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not start server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("stopping REST API server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return <-errCh
}
