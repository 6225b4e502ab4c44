package adaptor

import (
	"net/http"

	"moodflix/internal/dto/request"
	"moodflix/internal/dto/response"
	"moodflix/internal/usecase"
	"moodflix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgInvalidMovie = "Invalid movie data provided."

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// List handles GET /api/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.List(r.Context(), owner(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch favorites")
		return
	}

	utils.ResponseSuccess(w, movies)
}

// Add handles POST /api/favorites
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest

	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidMovie, nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, msgInvalidMovie, validationErrors)
		return
	}

	movie := req.ToEntity()
	added, err := h.service.Add(r.Context(), owner(r), movie)
	if err != nil {
		handleServiceError(w, h.log, err, "add favorite")
		return
	}

	if !added {
		utils.ResponseMessage(w, "Movie already in favorites")
		return
	}

	utils.ResponseCreated(w, movie)
}

// Remove handles DELETE /api/favorites?id=<n>
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(r.URL.Query().Get("id"))
	if !ok {
		utils.ResponseBadRequest(w, "Movie ID is required.", nil)
		return
	}

	if err := h.service.Remove(r.Context(), owner(r), id); err != nil {
		handleServiceError(w, h.log, err, "remove favorite")
		return
	}

	utils.ResponseSuccess(w, response.FavoriteDeleteResponse{Success: true, ID: id})
}

// Status handles GET /api/favorites/{id}
func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Movie ID is required.", nil)
		return
	}

	favorite, err := h.service.IsFavorite(r.Context(), owner(r), id)
	if err != nil {
		handleServiceError(w, h.log, err, "check favorite")
		return
	}

	utils.ResponseSuccess(w, response.FavoriteStatusResponse{ID: id, Favorite: favorite})
}

// Clear handles DELETE /api/favorites/all
func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), owner(r)); err != nil {
		handleServiceError(w, h.log, err, "clear favorites")
		return
	}

	utils.ResponseSuccess(w, response.ClearResponse{Success: true})
}
