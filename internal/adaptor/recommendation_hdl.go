package adaptor

import (
	"errors"
	"net/http"

	"moodflix/internal/dto/request"
	"moodflix/internal/tmdb"
	"moodflix/internal/usecase"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

type RecommendationHandler struct {
	service usecase.RecommendationService
	log     *zap.Logger
}

func NewRecommendationHandler(service usecase.RecommendationService, log *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		log:     log.With(zap.String("handler", "recommendation")),
	}
}

// Recommend handles POST /api/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req request.RecommendationRequest

	// a missing body or a non-string mood is the same client mistake
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, usecase.MsgMoodRequired, nil)
		return
	}

	resp, err := h.service.Recommend(r.Context(), owner(r), req.Mood)
	if err != nil {
		if errors.Is(err, tmdb.ErrCatalogUnavailable) || errors.Is(err, tmdb.ErrCatalogMisconfigured) {
			h.log.Error("Recommendation failed", zap.Error(err))
			utils.ResponseInternalError(w, "An error occurred while getting recommendations.")
			return
		}
		handleServiceError(w, h.log, err, "get recommendations")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// Trending handles GET /api/movies/trending
func (h *RecommendationHandler) Trending(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.Trending(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "fetch trending movies")
		return
	}

	utils.ResponseSuccess(w, movies)
}
