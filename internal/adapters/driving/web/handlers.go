package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/logger"
)

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap renders the page with a notice when a form action is refused.
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				logger.Error("web: %s %s: %v", r.Method, r.URL.Path, err)
			}
			s.renderPage(w, status, err.Error())
		}
	}
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) error {
	s.renderPage(w, http.StatusOK, "")
	return nil
}

// POST /analyze
// Form: input=<text>
// Failures recorded by the session (configuration, provider) are shown on
// the page after the redirect; refused submissions render with their status.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return errors.Join(domain.ErrInvalidInput, err)
	}

	// The analysis outlives the request so a dropped client still gets its
	// result recorded in history.
	ctx := context.WithoutCancel(r.Context())
	if _, err := s.ports.Session.SubmitText(ctx, r.PostFormValue("input")); err != nil {
		if errors.Is(err, domain.ErrEmptyInput) || errors.Is(err, domain.ErrAnalysisInProgress) {
			return err
		}
		logger.Debug("web: analysis failed: %v", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

// POST /clear
func (s *Server) handleClearForm(w http.ResponseWriter, r *http.Request) error {
	s.ports.Session.ClearInput()
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

// POST /history/{id}
func (s *Server) handleHistoryForm(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.ports.Session.SelectHistoryEntry(chi.URLParam(r, "id")); err != nil {
		return err
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

func (s *Server) renderPage(w http.ResponseWriter, status int, notice string) {
	data := newPageData(s.ports.Session.Snapshot(), s.modelName(), s.opts.Now(), s.renderer)
	data.Notice = notice

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index", data); err != nil {
		logger.Error("web: rendering page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
