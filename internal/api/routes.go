package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Health stays reachable without auth for probes
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			// Bearer auth only when a key is configured; the demo
			// deployment runs the API open
			if h.apiKey != "" {
				r.Use(AuthMiddleware(h.apiKey))
			}

			r.Get("/catalog", h.ListCatalog)
			r.Get("/catalog/facets", h.GetFacets)
			r.Get("/catalog/{id}", h.GetProduct)

			// Session-scoped routes resolve a browsing session first
			r.Group(func(r chi.Router) {
				r.Use(SessionMiddleware(h.sessions))
				r.Get("/history", h.GetHistory)
				r.Post("/history", h.RecordView)
				r.Delete("/history", h.ClearHistory)
				r.Post("/recommendations", h.Recommend)
			})
		})
	})

	return r
}
