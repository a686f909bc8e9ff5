package closures

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgClosureExists      = "на эту дату закрытие уже добавлено"
	msgClosureNotFound    = "закрытие не найдено"
	msgClosureDeleted     = "закрытие удалено"
)

// Handler дни закрытия салона
type Handler struct {
	service ClosureService
	logger  Logger
}

func NewHandler(service ClosureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/closures
// Query params: from (YYYY-MM-DD, опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var from *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		d, err := types.ParseDate(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = &d
	}

	items, err := h.service.ListClosures(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /closures - Failed to get closures: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := make([]*ClosureResponse, 0, len(items))
	for _, c := range items {
		result = append(result, fromDomain(c))
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/admin/closures
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.CreateClosure(r.Context(), &catalog.ClosureInput{Date: date, Reason: req.Reason})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrClosureExists):
			handlers.RespondConflict(w, msgClosureExists)
		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /admin/closures - Failed to create closure: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/closures - Closure created: date=%s", types.FormatDate(created.Date))
	handlers.RespondJSON(w, http.StatusOK, fromDomain(created))
}

// Delete DELETE /api/admin/closures/{closureId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	closureID := mux.Vars(r)["closureId"]

	if err := h.service.DeleteClosure(r.Context(), closureID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrClosureNotFound):
			handlers.RespondNotFound(w, msgClosureNotFound)
		default:
			h.logger.Error("DELETE /admin/closures/{id} - Failed: closure_id=%s, error=%v", closureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &handlers.MessageResponse{Message: msgClosureDeleted})
}
