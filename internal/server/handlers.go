package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/analyzer"
	"github.com/hyperjump/huella/internal/models"
)

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.logger.Debug("analyze request", zap.Int("text_bytes", len(req.Text)), zap.Int("limit", req.Limit))
	resp, err := s.Service().Analyze(r.Context(), &req)
	if err != nil {
		s.fail(w, "analysis failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.Service().Compare(r.Context(), &req)
	if err != nil {
		s.fail(w, "comparison failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.Service().Profile(r.Context(), &req)
	if err != nil {
		s.fail(w, "profile failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	entries := s.Service().Entries()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

func (s *Server) handleCorpusSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := models.CorpusSearchQuery{Query: params.Get("q")}
	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		q.Limit = limit
	}
	if v := params.Get("fuzzy"); v != "" {
		fuzzy, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid fuzzy flag")
			return
		}
		q.Fuzzy = fuzzy
	}
	resp, err := s.Service().Lookup(r.Context(), &q)
	if err != nil {
		s.fail(w, "corpus search failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"corpus_entries": s.Service().Corpus().Len(),
		"min_similarity": s.Service().MinSimilarity(),
	})
}

// fail maps service errors to status codes. Validation errors are the
// caller's fault and are not logged as failures.
func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyText), errors.Is(err, models.ErrEmptyQuery):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analyzer.ErrLookupDisabled):
		s.respondError(w, http.StatusNotImplemented, err.Error())
	default:
		s.logger.Error(msg, zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
