package adaptor

import (
	"net/http"

	"moodflix/internal/dto/response"
	"moodflix/internal/usecase"
	"moodflix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	service usecase.HistoryService
	log     *zap.Logger
}

func NewHistoryHandler(service usecase.HistoryService, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "history")),
	}
}

// List handles GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), owner(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch history")
		return
	}

	utils.ResponseSuccess(w, entries)
}

// Remove handles DELETE /api/history/{id}
func (h *HistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), owner(r), id); err != nil {
		handleServiceError(w, h.log, err, "remove history entry")
		return
	}

	utils.ResponseSuccess(w, response.HistoryDeleteResponse{Success: true, ID: id})
}

// Clear handles DELETE /api/history
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), owner(r)); err != nil {
		handleServiceError(w, h.log, err, "clear history")
		return
	}

	utils.ResponseSuccess(w, response.ClearResponse{Success: true})
}
