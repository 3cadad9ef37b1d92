package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/export"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/notebook"
)

type notebookEntryRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if s.notebooks == nil {
		s.writeError(w, r, fmt.Errorf("notebook sessions: %w", apperrors.ErrStorageUnavailable))
		return
	}
	sess, err := s.notebooks.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, sess)
}

// session resolves {sid}. It writes the error response itself and reports
// whether the handler may continue.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (notebook.Session, bool) {
	if s.notebooks == nil {
		s.writeError(w, r, fmt.Errorf("notebook sessions: %w", apperrors.ErrStorageUnavailable))
		return notebook.Session{}, false
	}
	sess, err := s.notebooks.Get(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		s.writeError(w, r, err)
		return notebook.Session{}, false
	}
	return sess, true
}

func (s *Server) handleListNotebook(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entries, err := s.notebooks.List(r.Context(), sess, parseInt(r.URL.Query().Get("limit"), 0))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, entries)
}

func (s *Server) handleAppendNotebook(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req notebookEntryRequest
	if err := readBodyJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	entry, err := s.notebooks.Append(r.Context(), sess, req.Content, time.Time{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, entry)
}

func (s *Server) handleExportNotebook(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entries, err := s.notebooks.List(r.Context(), sess, 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.NotebookXLSX(&buf, entries); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="notebook.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
