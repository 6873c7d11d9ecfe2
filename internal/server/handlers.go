package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/causeway/pkg/causal"
	"github.com/matzehuels/causeway/pkg/errors"
	"github.com/matzehuels/causeway/pkg/graphio"
	"github.com/matzehuels/causeway/pkg/pipeline"
	"github.com/matzehuels/causeway/pkg/store"
)

// createRequest is the POST /api/graphs body.
type createRequest struct {
	Name  string        `json:"name"`
	Graph graphio.Graph `json:"graph"`
}

// layoutSummary is the list-view projection of a layout document.
type layoutSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Events    int    `json:"events"`
	CreatedAt string `json:"created_at"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	g, err := graphio.ToCausal(req.Graph)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph"))
		return
	}

	result, err := s.runner.Execute(r.Context(), g, pipeline.Options{
		Name:    req.Name,
		Formats: []string{pipeline.FormatDOT, pipeline.FormatSVG},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render failed"))
		return
	}

	layout := &store.Layout{
		ID:        s.newID(),
		Name:      req.Name,
		Graph:     graphio.FromCausal(g),
		DOT:       string(result.Artifacts[pipeline.FormatDOT]),
		SVG:       string(result.Artifacts[pipeline.FormatSVG]),
		CreatedAt: s.now(),
	}
	if err := s.store.Put(r.Context(), layout); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}

	s.logger.Info("layout created", "id", layout.ID, "name", layout.Name,
		"events", len(layout.Graph.Events))
	writeJSON(w, http.StatusCreated, layout)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	layouts, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list layouts"))
		return
	}
	out := make([]layoutSummary, len(layouts))
	for i, l := range layouts {
		out[i] = layoutSummary{
			ID:        l.ID,
			Name:      l.Name,
			Events:    len(l.Graph.Events),
			CreatedAt: l.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.loadLayout(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete layout"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.loadLayout(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(layout.DOT))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.loadLayout(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(layout.SVG))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGraph(w, r)
	if !ok {
		return
	}
	stats, err := g.Stats()
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeCycle, err, "graph contains a cycle"))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGraph(w, r)
	if !ok {
		return
	}
	order, acyclic := g.TopologicalSort()
	if !acyclic {
		s.writeError(w, errors.New(errors.ErrCodeCycle, "graph contains a cycle"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

// loadLayout fetches the layout addressed by the {id} URL parameter, writing
// the error response itself on failure.
func (s *Server) loadLayout(w http.ResponseWriter, r *http.Request) (*store.Layout, bool) {
	id := chi.URLParam(r, "id")
	layout, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "layout %s not found", id))
		return nil, false
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "get layout %s", id))
		return nil, false
	}
	return layout, true
}

// loadGraph fetches a layout and rehydrates its causal graph.
func (s *Server) loadGraph(w http.ResponseWriter, r *http.Request) (*causal.Graph, bool) {
	layout, ok := s.loadLayout(w, r)
	if !ok {
		return nil, false
	}
	g, err := graphio.ToCausal(layout.Graph)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "stored graph is invalid"))
		return nil, false
	}
	return g, true
}

func (s *Server) writeError(w http.ResponseWriter, err *errors.Error) {
	status := err.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", err.Code, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    err.Code,
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
