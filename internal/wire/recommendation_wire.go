package wire

import (
	"net/http"

	"moodflix/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRecommendation(
	r chi.Router,
	recommendationHandler *adaptor.RecommendationHandler,
	limit func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/recommendations - mood to movies; history is kept when an owner resolves
	r.With(limit).Post("/api/recommendations", recommendationHandler.Recommend)

	// GET /api/movies/trending - empty-state list
	r.Get("/api/movies/trending", recommendationHandler.Trending)
}
