package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateDateTime(ctx context.Context, id string, dateTime time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
}

// AvailabilityChecker проверка дня и интервала мастера
type AvailabilityChecker interface {
	IsDayOpen(ctx context.Context, date time.Time) (bool, *domain.Settings, error)
	CheckSlot(ctx context.Context, staffID string, start time.Time, durationMinutes int, excludeID *string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
