package wire

import (
	"moodflix/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies/search?q=&page= - title search
	r.Get("/api/movies/search", movieHandler.Search)

	// GET /api/movies/{id} - details with cast, trailer and similar titles
	r.Get("/api/movies/{id}", movieHandler.Details)
}
