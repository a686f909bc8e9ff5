package notification_preferences

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgSaved              = "настройки уведомлений сохранены"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/user/notification-preferences
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	prefs, err := h.service.NotificationPreferences(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			handlers.RespondJSON(w, http.StatusOK, &PreferencesResponse{NotificationPreferences: []string{}})
			return
		}
		h.logger.Error("GET /user/notification-preferences - Failed to get preferences: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &PreferencesResponse{NotificationPreferences: prefs})
}

// Update PUT /api/user/notification-preferences
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PreferencesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /user/notification-preferences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	prefs, err := h.service.UpdateNotificationPreferences(r.Context(), userID, req.NotificationPreferences)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /user/notification-preferences - Invalid preferences: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, users.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)
		default:
			h.logger.Error("PUT /user/notification-preferences - Failed to save preferences: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &PreferencesResponse{NotificationPreferences: prefs, Message: msgSaved})
}
