package get_all_appointments

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// parseQuery разбирает опциональные параметры date (YYYY-MM-DD) и status
func parseQuery(dateStr, statusStr string) (*time.Time, *string, error) {
	var date *time.Time
	if dateStr != "" {
		d, err := types.ParseDate(dateStr)
		if err != nil {
			return nil, nil, err
		}
		date = &d
	}

	var status *string
	if statusStr != "" {
		status = &statusStr
	}

	return date, status, nil
}
