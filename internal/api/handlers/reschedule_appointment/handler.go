package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат date_time, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "запись не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "недопустимый статус записи"
	msgPastDateTime       = "время записи должно быть в будущем"
	msgDayClosed          = "салон закрыт в выбранный день"
	msgInvalidTimeSlot    = "выбранное время не входит в сетку записи"
	msgSlotNotAvailable   = "выбранное время уже занято, выберите другое"
	msgNothingToUpdate    = "нет полей для обновления"
)

type Handler struct {
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	dateTime, err := handlers.ParseDateTime(req.DateTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		DateTime:      dateTime,
	})
	if err != nil {
		h.respondError(w, "PATCH /appointments/{id}/reschedule", appointmentID, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%s, user_id=%s",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainAppointment(result))
}

// HandleAdmin PATCH /api/admin/appointments/{appointmentId}
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.DateTime == nil && req.Status == nil {
		handlers.RespondBadRequest(w, msgNothingToUpdate)
		return
	}

	var dateTime *time.Time
	if req.DateTime != nil {
		dt, err := handlers.ParseDateTime(*req.DateTime)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateTime)
			return
		}
		dateTime = &dt
	}

	result, err := h.useCase.ExecuteAdmin(r.Context(), &rescheduleAppointment.AdminRequest{
		AppointmentID: appointmentID,
		DateTime:      dateTime,
		Status:        req.Status,
	})
	if err != nil {
		h.respondError(w, "PATCH /admin/appointments/{id}", appointmentID, err)
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id} - Appointment updated: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainAppointment(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route, appointmentID string, err error) {
	switch {
	case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: appointment_id=%s", route, appointmentID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: appointment_id=%s", route, appointmentID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available: appointment_id=%s", route, appointmentID)
		handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeSlotTaken, msgSlotNotAvailable)

	case errors.Is(err, rescheduleAppointment.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, rescheduleAppointment.ErrPastDateTime):
		handlers.RespondBadRequest(w, msgPastDateTime)

	case errors.Is(err, rescheduleAppointment.ErrDayClosed):
		handlers.RespondBadRequest(w, msgDayClosed)

	case errors.Is(err, rescheduleAppointment.ErrInvalidTimeSlot):
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Failed to update appointment: appointment_id=%s, error=%v", route, appointmentID, err)
		handlers.RespondInternalError(w)
	}
}
