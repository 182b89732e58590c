package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/jobmatch/internal/ingest"
	"github.com/jonathan/jobmatch/internal/types"
)

// handleScrape fetches postings from the requested sources and ingests them.
// Unreachable sources are skipped; their counts are simply absent from the
// response.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.authHandler.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	sources, err := s.selectSources(req.Sources)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	fetched, err := ingest.FetchAll(ctx, sources, req.Query, req.Location, req.Limit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := types.ScrapeResponse{Sources: make(map[string]types.SourceResult)}
	for name, postings := range fetched {
		result, err := s.ingestor.Ingest(ctx, name, postings)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Ingestion failed: "+err.Error())
			return
		}
		resp.Sources[name] = types.SourceResult{Found: result.Found, Saved: result.Saved}
		resp.Found += result.Found
		resp.Saved += result.Saved
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// selectSources resolves requested source names against the configured set.
// An empty request means every configured source.
func (s *Server) selectSources(names []string) ([]ingest.Source, error) {
	if len(names) == 0 {
		sources := make([]ingest.Source, 0, len(s.sources))
		for _, src := range s.sources {
			sources = append(sources, src)
		}
		return sources, nil
	}

	sources := make([]ingest.Source, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		src, ok := s.sources[name]
		if !ok {
			return nil, &ErrValidation{Field: "sources", Message: "unknown source: " + name}
		}
		sources = append(sources, src)
	}
	return sources, nil
}
