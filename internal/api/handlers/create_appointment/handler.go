package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат date_time, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранное время уже занято, выберите другое"
	msgNotApproved        = "аккаунт ещё не подтверждён администратором"
	msgUserNotFound       = "пользователь не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgPastDateTime       = "время записи должно быть в будущем"
	msgDayClosed          = "салон закрыт в выбранный день"
	msgInvalidTimeSlot    = "выбранное время не входит в сетку записи"
	msgInvalidInput       = "не заполнены обязательные поля"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date_time %q: %v", req.DateTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, "POST /appointments", err)
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, user_id=%s",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainAppointment(result))
}

// HandleManual POST /api/admin/appointments/manual
func (h *Handler) HandleManual(w http.ResponseWriter, r *http.Request) {
	var req ManualAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointments/manual - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/appointments/manual - Invalid date_time %q: %v", req.DateTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.ExecuteManual(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, "POST /admin/appointments/manual", err)
		return
	}

	h.logger.Info("POST /admin/appointments/manual - Appointment created successfully: appointment_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainAppointment(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, createAppointment.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available", route)
		handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeSlotTaken, msgSlotNotAvailable)

	case errors.Is(err, createAppointment.ErrNotApproved):
		h.logger.Warn("%s - User not approved", route)
		handlers.RespondErrorCode(w, http.StatusForbidden, handlers.CodeNotApproved, msgNotApproved)

	case errors.Is(err, createAppointment.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, createAppointment.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createAppointment.ErrStaffNotFound):
		h.logger.Warn("%s - Staff not found", route)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, createAppointment.ErrPastDateTime):
		handlers.RespondBadRequest(w, msgPastDateTime)

	case errors.Is(err, createAppointment.ErrDayClosed):
		handlers.RespondBadRequest(w, msgDayClosed)

	case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createAppointment.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to create appointment: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
