package adaptor

import (
	"context"
	"errors"
	"net/http"

	"moodflix/internal/tmdb"
	"moodflix/internal/usecase"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Recommendation *RecommendationHandler
	Movie          *MovieHandler
	Favorite       *FavoriteHandler
	History        *HistoryHandler
	Auth           *AuthHandler
}

func NewHandler(service *usecase.Service, tokens *utils.TokenManager, log *zap.Logger) *Handler {
	return &Handler{
		Recommendation: NewRecommendationHandler(service.Recommendation, log),
		Movie:          NewMovieHandler(service.Movie, log),
		Favorite:       NewFavoriteHandler(service.Favorite, log),
		History:        NewHistoryHandler(service.History, log),
		Auth:           NewAuthHandler(service.Auth, tokens, log),
	}
}

// handleServiceError maps service errors to a status code and {"error"} body.
// Unknown errors become a 500 with "Failed to <operation>."
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var ve *usecase.ValidationError

	switch {
	case errors.As(err, &ve):
		log.Debug(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, ve.Message, ve.Fields)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Unauthorized")

	case errors.Is(err, usecase.ErrEmailTaken):
		log.Info(operation+" failed - email taken")
		utils.ResponseBadRequest(w, "User already exists", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, tmdb.ErrMovieNotFound):
		utils.ResponseNotFound(w, "Movie not found")

	case errors.Is(err, tmdb.ErrCatalogMisconfigured):
		log.Error(operation+" failed - catalog not configured", zap.Error(err))
		utils.ResponseInternalError(w, "Movie catalog is not configured.")

	case errors.Is(err, tmdb.ErrCatalogUnavailable):
		log.Warn(operation+" failed - catalog unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, "Movie catalog is unavailable, try again later.")

	case errors.Is(err, context.Canceled):
		log.Debug(operation+" canceled by client")
		utils.ResponseInternalError(w, "Request canceled.")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Failed to "+operation+".")
	}
}

// owner returns the owner resolved by the session middleware, or "".
func owner(r *http.Request) string {
	o, _ := utils.GetOwnerFromContext(r.Context())
	return o
}
