// Package server implements the rnaplot HTTP API.
//
// Routes:
//
//	POST /v1/draw           render a structure and return the artifact
//	POST /v1/drawings       render and persist a drawing
//	GET  /v1/drawings       list recent drawings
//	GET  /v1/drawings/{id}  fetch a persisted drawing
//	DELETE /v1/drawings/{id}
//	GET  /healthz
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strandlab/rnaplot/pkg/pipeline"
	"github.com/strandlab/rnaplot/pkg/store"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address (host:port).
	Addr string
	// Runner executes the drawing pipeline. Required.
	Runner *pipeline.Runner
	// Store persists drawings. Defaults to an in-memory store.
	Store store.Store
	// Logger defaults to log.Default().
	Logger *log.Logger
	// MaxBodyBytes bounds request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Server serves the drawing API.
type Server struct {
	cfg    Config
	logger *log.Logger
	store  store.Store
	http   *http.Server
}

// New creates a server with its routes mounted.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		store:  cfg.Store,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/draw", s.handleDraw)
		r.Route("/drawings", func(r chi.Router) {
			r.Post("/", s.handleCreateDrawing)
			r.Get("/", s.handleListDrawings)
			r.Get("/{id}", s.handleGetDrawing)
			r.Delete("/{id}", s.handleDeleteDrawing)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
