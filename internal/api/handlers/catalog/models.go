package catalog

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

// ServiceRequest HTTP request model создания услуги
type ServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// ServicePatchRequest HTTP request model обновления услуги
type ServicePatchRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
}

// StaffRequest HTTP request model создания и обновления мастера
type StaffRequest struct {
	Name        *string  `json:"name,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type StaffResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
}

func (r *ServiceRequest) toInput() *catalogService.ServiceInput {
	return &catalogService.ServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}

func (r *ServicePatchRequest) toPatch() *catalogService.ServicePatch {
	return &catalogService.ServicePatch{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}

func fromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

func fromDomainStaff(s *domain.Staff) *StaffResponse {
	specialties := s.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return &StaffResponse{ID: s.ID, Name: s.Name, Specialties: specialties}
}
