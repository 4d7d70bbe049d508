package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/commute/pkg/buildinfo"
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/errors"
	"github.com/matzehuels/commute/pkg/pipeline"
	"github.com/matzehuels/commute/pkg/render"
	"github.com/matzehuels/commute/pkg/store"
)

type diagramRequest struct {
	Diagram string           `json:"diagram"`
	Options pipeline.Options `json:"options"`
}

type equationsRequest struct {
	Equations string `json:"equations"`
}

type deriveResponse struct {
	Equations []string `json:"equations"`
	Cached    bool     `json:"cached"`
}

type reconstructResponse struct {
	Diagram   string `json:"diagram"`
	Objects   int    `json:"objects"`
	Morphisms int    `json:"morphisms"`
	Cached    bool   `json:"cached"`
}

type checkResponse struct {
	*pipeline.Report
	OK      bool   `json:"ok"`
	Rebuilt string `json:"rebuilt"`
}

type saveRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Diagram string `json:"diagram"`
}

type listResponse struct {
	Diagrams []*store.Record `json:"diagrams"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// options fills the unset fields of req from the server defaults.
func (s *Server) options(req pipeline.Options) pipeline.Options {
	if req.MaxDepth == 0 {
		req.MaxDepth = s.opts.MaxDepth
	}
	if len(req.Formats) == 0 {
		req.Formats = s.opts.Formats
	}
	if req.RankDir == "" {
		req.RankDir = s.opts.RankDir
	}
	if req.Scale == 0 {
		req.Scale = s.opts.Scale
	}
	if req.PNGScale == 0 {
		req.PNGScale = s.opts.PNGScale
	}
	if req.Seed == 0 {
		req.Seed = s.opts.Seed
	}
	req.Logger = s.logger
	return req
}

// parseDiagram decodes a diagramRequest and parses its diagram text.
func (s *Server) parseDiagram(w http.ResponseWriter, r *http.Request) (*diagram.Graph, pipeline.Options, bool) {
	var req diagramRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return nil, pipeline.Options{}, false
	}
	g, err := dsl.ParseDiagram(req.Diagram)
	if err != nil {
		s.writeError(w, r, err)
		return nil, pipeline.Options{}, false
	}
	return g, s.options(req.Options), true
}

func (s *Server) derive(w http.ResponseWriter, r *http.Request) {
	g, opts, ok := s.parseDiagram(w, r)
	if !ok {
		return
	}
	res, hit, err := s.runner.DeriveWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deriveResponse{Equations: res.Lines(), Cached: hit})
}

func (s *Server) reconstruct(w http.ResponseWriter, r *http.Request) {
	var req equationsRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, hit, err := s.runner.ReconstructWithCacheInfo(r.Context(), req.Equations, s.options(pipeline.Options{}))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reconstructResponse{
		Diagram:   dsl.SerializeDiagram(rec.Graph),
		Objects:   rec.Graph.ObjectCount(),
		Morphisms: rec.Graph.MorphismCount(),
		Cached:    hit,
	})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	g, opts, ok := s.parseDiagram(w, r)
	if !ok {
		return
	}
	report, err := s.runner.Check(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{
		Report:  report,
		OK:      report.OK(),
		Rebuilt: dsl.SerializeDiagram(report.Rebuilt),
	})
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.parseDiagram(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Inspect(g))
}

// render answers with the raw artifact of the format named by the format
// query parameter, or the first configured format.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	g, opts, ok := s.parseDiagram(w, r)
	if !ok {
		return
	}
	if q := r.URL.Query().Get("format"); q != "" {
		opts.Formats = []string{q}
	}
	if len(opts.Formats) > 1 {
		opts.Formats = opts.Formats[:1]
	}
	artifacts, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f := render.Format(opts.Formats[0])
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(f)])
}

func (s *Server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "diagram storage is not configured"))
		return false
	}
	return true
}

func (s *Server) listDiagrams(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Diagrams: recs})
}

// saveDiagram stores the canonical form of the diagram along with its
// derived equations.
func (s *Server) saveDiagram(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	var req saveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := dsl.ParseDiagram(req.Diagram)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Derive(r.Context(), g, s.options(pipeline.Options{}))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := &store.Record{
		ID:        req.ID,
		Name:      req.Name,
		Diagram:   dsl.SerializeDiagram(g),
		Equations: res.Lines(),
	}
	status := http.StatusCreated
	if req.ID != "" {
		if prev, err := s.store.Get(r.Context(), req.ID); err == nil {
			rec.CreatedAt = prev.CreatedAt
			status = http.StatusOK
		}
	}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, rec)
}

func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteDiagram(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
