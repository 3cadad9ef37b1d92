package server

import (
	"net/http"
	"strings"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

const maxNewsLimit = 50

// handleNews always answers 200; an unreachable feed yields an empty list.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	articles := make([]model.Article, 0)
	if s.feed == nil {
		writeOK(w, http.StatusOK, articles)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		query = s.defaultFeedQuery()
	}
	limit := parseInt(r.URL.Query().Get("limit"), s.feedLimit)
	if limit <= 0 || limit > maxNewsLimit {
		limit = s.feedLimit
	}

	for a := range s.feed.Articles(r.Context(), query, limit) {
		articles = append(articles, a)
	}
	writeOK(w, http.StatusOK, articles)
}

func (s *Server) defaultFeedQuery() string {
	if s.db == nil {
		return s.feedQuery
	}
	q, ok, err := service.GetConfig(s.db, service.ConfigFeedQuery)
	if err != nil || !ok || strings.TrimSpace(q) == "" {
		return s.feedQuery
	}
	return q
}
