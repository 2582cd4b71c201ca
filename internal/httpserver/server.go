// Package httpserver exposes the store to UI collaborators over HTTP:
// uniform CRUD per collection, the derived reads, click tracking, and the
// export/import and reset operations.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tabula-app/tabula/internal/httpserver/mw"
	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/internal/transfer"
	"github.com/tabula-app/tabula/internal/views"
	"github.com/tabula-app/tabula/pkg/types"
)

// Deps carries the shared dependencies handlers need.
type Deps struct {
	Logger logger.Logger
	Store  types.Store
	// StoreConfig re-attaches the store after a factory reset.
	StoreConfig types.Config
	Views       *views.Service
	Transfer    *transfer.Service
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// New builds the HTTP server: router, middlewares, route registration.
func New(addr string, d Deps) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(mw.Log(d.Logger))

	h := &handlers{deps: d}
	r.Route("/api", h.register)

	s := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{http: s, logger: d.Logger}
}

// Handler returns the server's root handler, useful with httptest.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
