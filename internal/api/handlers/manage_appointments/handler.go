package manage_appointments

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
)

const (
	msgNotFound      = "запись не найдена"
	msgCannotConfirm = "запись не может быть подтверждена"
	msgDeleted       = "запись удалена"
)

// Handler подтверждение и удаление записей администратором
type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Confirm PATCH /api/admin/appointments/{appointmentId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	result, err := h.service.Confirm(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Cannot confirm: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgCannotConfirm)
		default:
			h.logger.Error("PATCH /admin/appointments/{id}/confirm - Failed: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/confirm - Appointment confirmed: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainAppointment(result))
}

// Delete DELETE /api/admin/appointments/{appointmentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	if err := h.service.Delete(r.Context(), appointmentID); err != nil {
		if errors.Is(err, appointments.ErrAppointmentNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/appointments/{id} - Failed: appointment_id=%s, error=%v", appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/appointments/{id} - Appointment deleted: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgDeleted})
}

// DeleteCancelled DELETE /api/admin/appointments-cancelled/all
func (h *Handler) DeleteCancelled(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.DeleteCancelled(r.Context())
	if err != nil {
		h.logger.Error("DELETE /admin/appointments-cancelled/all - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteCancelledResponse{
		Message: fmt.Sprintf("удалено отменённых записей: %d", deleted),
		Deleted: deleted,
	})
}
