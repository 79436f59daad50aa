package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/logger"
)

const maxRequestBody = 1 << 20

// errorResponse is the JSON body of every API failure.
type errorResponse struct {
	Error string `json:"error"`
}

// analyzeRequest is the body of POST /api/v1/analyses.
type analyzeRequest struct {
	Input string `json:"input"`
}

type apiFunc func(http.ResponseWriter, *http.Request) (any, int, error)

// wrapAPI encodes the handler's result as JSON and maps errors to statuses.
func (s *Server) wrapAPI(h apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, status, err := h(w, r)
		if err != nil {
			status = statusFor(err)
			if status == http.StatusInternalServerError {
				logger.Error("api: %s %s: %v", r.Method, r.URL.Path, err)
			}
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}
		if body == nil {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, body)
	}
}

// GET /api/v1/session
func (s *Server) apiSession(_ http.ResponseWriter, _ *http.Request) (any, int, error) {
	return s.ports.Session.Snapshot(), http.StatusOK, nil
}

// POST /api/v1/analyses
// Body: {"input": "<free text about a person>"}
func (s *Server) apiAnalyze(_ http.ResponseWriter, r *http.Request) (any, int, error) {
	var req analyzeRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		return nil, 0, errors.Join(domain.ErrInvalidInput, err)
	}

	result, err := s.ports.Session.SubmitText(context.WithoutCancel(r.Context()), req.Input)
	if err != nil {
		return nil, 0, err
	}
	return result, http.StatusOK, nil
}

// DELETE /api/v1/input
func (s *Server) apiClearInput(_ http.ResponseWriter, _ *http.Request) (any, int, error) {
	s.ports.Session.ClearInput()
	return nil, http.StatusNoContent, nil
}

// GET /api/v1/history
func (s *Server) apiHistory(_ http.ResponseWriter, _ *http.Request) (any, int, error) {
	return s.ports.Session.Snapshot().History, http.StatusOK, nil
}

// POST /api/v1/history/{id}/select
func (s *Server) apiSelectHistory(_ http.ResponseWriter, r *http.Request) (any, int, error) {
	result, err := s.ports.Session.SelectHistoryEntry(chi.URLParam(r, "id"))
	if err != nil {
		return nil, 0, err
	}
	return result, http.StatusOK, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("api: encoding response: %v", err)
	}
}
