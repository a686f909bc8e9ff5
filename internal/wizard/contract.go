package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/integrations/salonapi"
)

// Directory справочник салона
type Directory interface {
	Services(ctx context.Context, s *salonapi.Session) ([]salonapi.Service, error)
	Staff(ctx context.Context, s *salonapi.Session) ([]salonapi.Staff, error)
	Settings(ctx context.Context, s *salonapi.Session) (*salonapi.Settings, error)
}

// Availability запросы свободного времени
type Availability interface {
	Slots(ctx context.Context, s *salonapi.Session, date time.Time, serviceID, staffID string) ([]string, error)
	DaysStatus(ctx context.Context, s *salonapi.Session, serviceID, staffID string, from, to time.Time) ([]salonapi.DayStatus, error)
	FirstAvailable(ctx context.Context, s *salonapi.Session, serviceID, staffID string, days int) (*salonapi.FirstSlot, error)
}

// Reservations создание записи
type Reservations interface {
	CreateAppointment(ctx context.Context, s *salonapi.Session, req *salonapi.CreateAppointmentRequest) (*salonapi.Appointment, error)
}

// API все коллабораторы мастера записи; *salonapi.Client реализует его целиком
type API interface {
	Directory
	Availability
	Reservations
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}
