package get_days_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type AvailabilityService interface {
	DaysStatus(ctx context.Context, serviceID, staffID string, from, to time.Time) ([]domain.DayStatusEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
