package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и мастеров
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id string) error

	ListStaff(ctx context.Context) ([]*domain.Staff, error)
	GetStaff(ctx context.Context, id string) (*domain.Staff, error)
	CreateStaff(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, s *domain.Staff) error
	DeleteStaff(ctx context.Context, id string) error
}

// ClosureRepository интерфейс репозитория закрытий
type ClosureRepository interface {
	List(ctx context.Context, from, to *time.Time) ([]*domain.Closure, error)
	Create(ctx context.Context, c *domain.Closure) (*domain.Closure, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
