package adaptor

import (
	"net/http"

	"moodflix/internal/usecase"
	"moodflix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// Search handles GET /api/movies/search?q=&page=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)

	movies, err := h.service.Search(r.Context(), query, page)
	if err != nil {
		handleServiceError(w, h.log, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, movies)
}

// Details handles GET /api/movies/{id}
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID.", nil)
		return
	}

	details, err := h.service.Details(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "fetch movie")
		return
	}

	utils.ResponseSuccess(w, details)
}
