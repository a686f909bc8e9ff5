package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type AvailabilityService interface {
	Slots(ctx context.Context, date time.Time, serviceID, staffID string) ([]types.TimeString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
