package wire

import (
	"moodflix/internal/adaptor"
	"moodflix/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireHistory(r chi.Router, historyHandler *adaptor.HistoryHandler) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/history", func(r chi.Router) {
		r.Use(middleware.RequireOwner)

		r.Get("/", historyHandler.List)          // GET /api/history
		r.Delete("/", historyHandler.Clear)      // DELETE /api/history
		r.Delete("/{id}", historyHandler.Remove) // DELETE /api/history/{id}
	})
}
