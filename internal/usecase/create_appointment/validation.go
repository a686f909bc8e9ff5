package create_appointment

import (
	"fmt"
	"strings"
	"time"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	return validateTarget(req.ServiceID, req.StaffID, req.DateTime)
}

func validateManualRequest(req *ManualRequest) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client_phone is required", ErrInvalidInput)
	}
	return validateTarget(req.ServiceID, req.StaffID, req.DateTime)
}

func validateTarget(serviceID, staffID string, dateTime time.Time) error {
	if strings.TrimSpace(serviceID) == "" {
		return fmt.Errorf("%w: service_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(staffID) == "" {
		return fmt.Errorf("%w: staff_id is required", ErrInvalidInput)
	}
	if dateTime.IsZero() {
		return fmt.Errorf("%w: date_time is required", ErrInvalidInput)
	}
	return nil
}

// validateFuture время записи должно быть строго позже текущего
func validateFuture(dateTime, now time.Time) error {
	if !dateTime.After(now) {
		return ErrPastDateTime
	}
	return nil
}
