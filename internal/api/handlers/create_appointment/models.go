package create_appointment

import (
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	DateTime  string `json:"date_time"` // "2025-06-10T09:00:00Z"
}

// ManualAppointmentRequest HTTP request model записи от администратора
type ManualAppointmentRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email,omitempty"`
	ServiceID   string `json:"service_id"`
	StaffID     string `json:"staff_id"`
	DateTime    string `json:"date_time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID string) (*createAppointment.Request, error) {
	dateTime, err := handlers.ParseDateTime(r.DateTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		DateTime:  dateTime,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ManualAppointmentRequest) ToUseCaseRequest() (*createAppointment.ManualRequest, error) {
	dateTime, err := handlers.ParseDateTime(r.DateTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.ManualRequest{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		ServiceID:   r.ServiceID,
		StaffID:     r.StaffID,
		DateTime:    dateTime,
	}, nil
}
