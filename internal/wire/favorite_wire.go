package wire

import (
	"moodflix/internal/adaptor"
	"moodflix/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireFavorite(r chi.Router, favoriteHandler *adaptor.FavoriteHandler) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(middleware.RequireOwner)

		r.Get("/", favoriteHandler.List)        // GET /api/favorites
		r.Post("/", favoriteHandler.Add)        // POST /api/favorites
		r.Delete("/", favoriteHandler.Remove)   // DELETE /api/favorites?id=
		r.Delete("/all", favoriteHandler.Clear) // DELETE /api/favorites/all
		r.Get("/{id}", favoriteHandler.Status)  // GET /api/favorites/{id}
	})
}
