// Package server exposes the causal graph engine over HTTP.
//
// The API stores imported graphs as layout documents and serves their
// rendered artifacts:
//
//	POST   /api/graphs            import a graph, render it, store the layout
//	GET    /api/graphs            list stored layouts (without artifact bodies)
//	GET    /api/graphs/{id}       fetch a layout document
//	GET    /api/graphs/{id}/dot   DOT artifact
//	GET    /api/graphs/{id}/svg   SVG artifact
//	GET    /api/graphs/{id}/stats graph statistics
//	GET    /api/graphs/{id}/order topological order
//	DELETE /api/graphs/{id}       delete a layout
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/causeway/pkg/pipeline"
	"github.com/matzehuels/causeway/pkg/store"
)

// Server handles HTTP requests against a layout store.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	newID  func() string
	now    func() time.Time
}

// New creates a server backed by the given store and pipeline runner.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  st,
		runner: runner,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/graphs", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/dot", s.handleDOT)
			r.Get("/svg", s.handleSVG)
			r.Get("/stats", s.handleStats)
			r.Get("/order", s.handleOrder)
		})
	})
	return r
}

// requestID assigns a UUID to each request unless the client supplied one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = s.newID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", ww.Header().Get("X-Request-ID"))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
