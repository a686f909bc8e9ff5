package get_days_status

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DaysStatusRequest HTTP request model
type DaysStatusRequest struct {
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DayStatusResponse статус одного дня
type DayStatusResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func (r *DaysStatusRequest) parseRange() (time.Time, time.Time, error) {
	from, err := types.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := types.ParseDate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func fromDomain(entries []domain.DayStatusEntry) []DayStatusResponse {
	result := make([]DayStatusResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, DayStatusResponse{
			Date:   types.FormatDate(e.Date),
			Status: string(e.Status),
		})
	}
	return result
}
