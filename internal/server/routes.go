package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RegisterRoutes initializes all server routes.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/bioage/quick", s.handleQuickBioAge)
		r.Post("/bioage/detailed", s.handleDetailedBioAge)

		r.Get("/categories", s.handleListCategories)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Post("/", s.handleCreatePost)
			r.Get("/export", s.handleExportPosts)
			r.Get("/{id}", s.handleGetPost)
			r.Post("/{id}/replies", s.handleAppendReply)
		})

		r.Get("/news", s.handleNews)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sid}/notebook", func(r chi.Router) {
			r.Get("/", s.handleListNotebook)
			r.Post("/", s.handleAppendNotebook)
			r.Get("/export", s.handleExportNotebook)
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "storage": "ok"}
	if s.db == nil {
		status["storage"] = "disabled"
	} else if err := s.db.PingContext(r.Context()); err != nil {
		status["storage"] = "unavailable"
	}
	writeOK(w, http.StatusOK, status)
}
