// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /version
//	POST   /v1/derive          {"diagram": "..."}   -> {"equations": [...]}
//	POST   /v1/reconstruct     {"equations": "..."} -> {"diagram": "...", "objects": n, "morphisms": m}
//	POST   /v1/check           {"diagram": "..."}   -> round-trip report
//	POST   /v1/inspect         {"diagram": "..."}   -> classification and cycle structure
//	POST   /v1/render?format=  {"diagram": "..."}   -> artifact bytes
//	GET    /v1/diagrams
//	POST   /v1/diagrams        {"name": "...", "diagram": "..."}
//	GET    /v1/diagrams/{id}
//	DELETE /v1/diagrams/{id}
//
// Errors are JSON objects carrying the error code and, for authoring errors,
// the line and character offset of the problem.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/commute/pkg/pipeline"
	"github.com/matzehuels/commute/pkg/store"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API. The store is optional; without one the
// /v1/diagrams routes answer 501.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	opts   pipeline.Options
	router chi.Router
}

// New creates a server. defaults supplies option values for requests that
// leave them unset.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
		opts:   defaults,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/version", s.version)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/derive", s.derive)
		r.Post("/reconstruct", s.reconstruct)
		r.Post("/check", s.check)
		r.Post("/inspect", s.inspect)
		r.Post("/render", s.render)

		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/", s.listDiagrams)
			r.Post("/", s.saveDiagram)
			r.Get("/{id}", s.getDiagram)
			r.Delete("/{id}", s.deleteDiagram)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
