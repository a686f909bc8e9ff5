package domain

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment represents a booked visit of a client to a staff member
type Appointment struct {
	ID        string
	UserID    string // для ручных записей: "manual_<8 символов>"
	UserName  string
	UserPhone string
	UserEmail string
	StaffID   string
	ServiceID string
	DateTime  time.Time // UTC
	Status    AppointmentStatus
	IsManual  bool

	// Denormalized data for history
	StaffName   string
	ServiceName string

	CreatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the appointment is waiting for confirmation
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// BelongsTo returns true if the appointment was booked by the user
func (a *Appointment) BelongsTo(userID string) bool {
	return a.UserID == userID
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	StaffID          *string            // Фильтр по мастеру (опционально)
	UserID           *string            // Фильтр по клиенту (опционально)
	From             *time.Time         // Начало периода включительно (опционально)
	To               *time.Time         // Конец периода не включительно (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
	ExcludeID        *string            // Исключить запись (при переносе)
	OrderDesc        bool               // Сортировка по дате по убыванию
}
