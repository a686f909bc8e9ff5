package get_first_available

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type AvailabilityService interface {
	FirstAvailable(ctx context.Context, serviceID, staffID string, days int) (*domain.FirstSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
