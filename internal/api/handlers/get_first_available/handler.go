package get_first_available

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "days_to_search вне допустимого диапазона"
	msgInvalidInput       = "не указаны service_id или staff_id"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/availability/first
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FirstAvailableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/first - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.FirstAvailable(r.Context(), req.ServiceID, req.StaffID, req.days())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("POST /availability/first - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("POST /availability/first - Failed to search: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if slot.Found {
		h.logger.Info("POST /availability/first - Found %s %s for staff_id=%s",
			types.FormatDate(slot.Date), slot.Time, req.StaffID)
	}
	handlers.RespondJSON(w, http.StatusOK, fromDomain(slot))
}
