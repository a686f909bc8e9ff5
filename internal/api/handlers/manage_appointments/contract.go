package manage_appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
	DeleteCancelled(ctx context.Context) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
