package catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgServiceDeleted     = "услуга удалена"
	msgStaffDeleted       = "мастер удалён"
)

// Handler справочник услуг и мастеров
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListServices GET /api/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to get services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := make([]*ServiceResponse, 0, len(items))
	for _, s := range items {
		result = append(result, fromDomainService(s))
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateService POST /api/admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.CreateService(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainService(created))
}

// UpdateService PUT /api/admin/services/{serviceId}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req ServicePatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateService(r.Context(), serviceID, req.toPatch())
	if err != nil {
		h.respondError(w, "PUT /admin/services/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainService(updated))
}

// DeleteService DELETE /api/admin/services/{serviceId}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	if err := h.service.DeleteService(r.Context(), serviceID); err != nil {
		h.respondError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusOK, &handlers.MessageResponse{Message: msgServiceDeleted})
}

// ListStaff GET /api/staff
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListStaff(r.Context())
	if err != nil {
		h.logger.Error("GET /staff - Failed to get staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := make([]*StaffResponse, 0, len(items))
	for _, s := range items {
		result = append(result, fromDomainStaff(s))
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateStaff POST /api/admin/staff
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	created, err := h.service.CreateStaff(r.Context(), name, req.Specialties)
	if err != nil {
		h.respondError(w, "POST /admin/staff", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainStaff(created))
}

// UpdateStaff PUT /api/admin/staff/{staffId}
func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	staffID := mux.Vars(r)["staffId"]

	var req StaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateStaff(r.Context(), staffID, &catalogService.StaffPatch{
		Name:        req.Name,
		Specialties: req.Specialties,
	})
	if err != nil {
		h.respondError(w, "PUT /admin/staff/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainStaff(updated))
}

// DeleteStaff DELETE /api/admin/staff/{staffId}
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	staffID := mux.Vars(r)["staffId"]

	if err := h.service.DeleteStaff(r.Context(), staffID); err != nil {
		h.respondError(w, "DELETE /admin/staff/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/staff/{id} - Staff deleted: staff_id=%s", staffID)
	handlers.RespondJSON(w, http.StatusOK, &handlers.MessageResponse{Message: msgStaffDeleted})
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, catalogService.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, catalogService.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
