package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/strandlab/rnaplot/pkg/buildinfo"
	"github.com/strandlab/rnaplot/pkg/errors"
	"github.com/strandlab/rnaplot/pkg/pipeline"
	"github.com/strandlab/rnaplot/pkg/store"
)

// drawRequest is the body of POST /v1/draw and POST /v1/drawings.
// Format is a single-format shorthand for Formats.
type drawRequest struct {
	pipeline.Options
	Format string `json:"format,omitempty"`
}

func (s *Server) decodeDrawRequest(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var req drawRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	// Drain so keep-alive connections can be reused
	_, _ = io.Copy(io.Discard, body)

	opts := req.Options
	if req.Format != "" {
		opts.Formats = []string{req.Format}
	}
	opts.Logger = s.logger
	return opts, nil
}

// handleDraw renders a structure and returns the artifact directly.
// A single requested format is returned raw with its content type;
// multiple formats come back in a JSON envelope.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeDrawRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.SetRenderDefaults()

	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"layout_hash": result.LayoutHash,
		"nucleotides": result.Stats.Nucleotides,
		"pairs":       result.Stats.Pairs,
		"artifacts":   result.Artifacts,
	})
}

// handleCreateDrawing renders a structure and persists the artifact.
func (s *Server) handleCreateDrawing(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeDrawRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.SetRenderDefaults()
	// Persisted drawings hold exactly one artifact
	opts.Formats = opts.Formats[:1]

	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	d := &store.Drawing{
		Structure:   opts.Structure,
		Sequence:    opts.Sequence,
		Format:      format,
		Artifact:    result.Artifacts[format],
		LayoutHash:  result.LayoutHash,
		Nucleotides: result.Stats.Nucleotides,
		Pairs:       result.Stats.Pairs,
	}
	if err := s.store.Put(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, d)
}

// handleGetDrawing fetches a persisted drawing. With ?raw=1 the artifact
// bytes are returned directly under their content type.
func (s *Server) handleGetDrawing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if raw := r.URL.Query().Get("raw"); raw == "1" || raw == "true" {
		w.Header().Set("Content-Type", contentTypes[d.Format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(d.Artifact)
		return
	}

	s.writeJSON(w, http.StatusOK, d)
}

// handleListDrawings lists recent drawings without artifact payloads.
func (s *Server) handleListDrawings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"drawings": list})
}

// handleDeleteDrawing removes a persisted drawing.
func (s *Server) handleDeleteDrawing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealthz reports liveness and build info.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
