package clients

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
)

const msgUserNotFound = "клиент не найден"

// Handler управление клиентами администратором
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

// List GET /api/admin/clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListClients(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/clients - Failed to get clients: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := make([]*handlers.UserResponse, 0, len(items))
	for _, u := range items {
		result = append(result, handlers.FromDomainUser(u))
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Approve PATCH /api/admin/clients/{userId}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, true, "PATCH /admin/clients/{id}/approve")
}

// Revoke PATCH /api/admin/clients/{userId}/revoke
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, false, "PATCH /admin/clients/{id}/revoke")
}

func (h *Handler) setApproved(w http.ResponseWriter, r *http.Request, approved bool, route string) {
	userID := mux.Vars(r)["userId"]

	user, err := h.service.SetApproved(r.Context(), userID, approved)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("%s - Client not found: user_id=%s", route, userID)
			handlers.RespondNotFound(w, msgUserNotFound)
		default:
			h.logger.Error("%s - Failed: user_id=%s, error=%v", route, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Client updated: user_id=%s, approved=%t", route, userID, approved)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainUser(user))
}
