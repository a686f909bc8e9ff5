package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

type CatalogService interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	CreateService(ctx context.Context, in *catalogService.ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id string, patch *catalogService.ServicePatch) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error

	ListStaff(ctx context.Context) ([]*domain.Staff, error)
	CreateStaff(ctx context.Context, name string, specialties []string) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, id string, patch *catalogService.StaffPatch) (*domain.Staff, error)
	DeleteStaff(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
