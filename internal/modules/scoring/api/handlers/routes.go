package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all scoring routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/scoring", func(r chi.Router) {
		r.Post("/score", h.HandleScoreAll)
		r.Get("/trend/{number}", h.HandleTrend)
	})
}
