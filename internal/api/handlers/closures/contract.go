package closures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

type ClosureService interface {
	ListClosures(ctx context.Context, from *time.Time) ([]*domain.Closure, error)
	CreateClosure(ctx context.Context, in *catalog.ClosureInput) (*domain.Closure, error)
	DeleteClosure(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
