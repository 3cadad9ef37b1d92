package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/export"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

const (
	defaultPostLimit = 50
	maxPostLimit     = 500
)

type createPostRequest struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

type replyRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := service.PostCategories(s.db)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, cats)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	// Pages are capped; /posts/export returns the full set.
	limit := parseInt(r.URL.Query().Get("limit"), defaultPostLimit)
	switch {
	case limit <= 0:
		limit = defaultPostLimit
	case limit > maxPostLimit:
		limit = maxPostLimit
	}
	posts, err := service.ListPosts(s.db, service.PostFilter{
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, posts)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := readBodyJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := service.CreatePost(s.db, service.PostInput{Category: req.Category, Content: req.Content})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	post, err := service.GetPost(s.db, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, post)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	post, err := service.GetPost(s.db, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, post)
}

func (s *Server) handleAppendReply(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req replyRequest
	if err := readBodyJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := service.AppendReply(s.db, id, req.Text); err != nil {
		s.writeError(w, r, err)
		return
	}
	post, err := service.GetPost(s.db, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, post)
}

func (s *Server) handleExportPosts(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = export.FormatJSON
	}
	if format != export.FormatJSON && format != export.FormatXLSX {
		s.writeError(w, r, fmt.Errorf("%w: format must be json or xlsx", apperrors.ErrInvalidInput))
		return
	}
	posts, err := service.ListPosts(s.db, service.PostFilter{Category: r.URL.Query().Get("category")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Buffer first so an encoding failure can still produce a JSON error.
	var buf bytes.Buffer
	contentType := export.ContentTypeJSON
	if format == export.FormatXLSX {
		contentType = export.ContentTypeXLSX
		err = export.PostsXLSX(&buf, posts)
	} else {
		err = export.PostsJSON(&buf, posts)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="posts.%s"`, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func postID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid post id %q", apperrors.ErrInvalidInput, raw)
	}
	return id, nil
}
