package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		r.Get("/api/notes", h.listNotes)
		r.Get("/api/notes/{id}", h.getNote)

		r.Method("GET", "/metrics", h.metrics.Handler())
	})

	// routes requiring a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/notes", h.createNote)
		r.Delete("/api/notes/{id}", h.deleteNote)

		r.Post("/api/notes/{id}/attachments", h.uploadAttachment)
		r.Delete("/api/attachments/{id}", h.deleteAttachment)
	})

	return router
}
