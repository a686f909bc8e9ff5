package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	ServiceDurations(ctx context.Context, ids []string) (map[string]int, error)
}

// ClosureRepository интерфейс репозитория закрытий
type ClosureRepository interface {
	List(ctx context.Context, from, to *time.Time) ([]*domain.Closure, error)
}

// SettingsProvider источник настроек салона (с кэшем)
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
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
