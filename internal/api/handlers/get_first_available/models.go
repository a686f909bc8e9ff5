package get_first_available

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// defaultDaysToSearch окно поиска, если клиент его не передал
const defaultDaysToSearch = 60

// FirstAvailableRequest HTTP request model
type FirstAvailableRequest struct {
	ServiceID    string `json:"service_id"`
	StaffID      string `json:"staff_id"`
	DaysToSearch *int   `json:"days_to_search,omitempty"`
}

// FirstAvailableResponse HTTP response model
// Date и Time присутствуют только при found=true
type FirstAvailableResponse struct {
	Found bool              `json:"found"`
	Date  *string           `json:"date,omitempty"`
	Time  *types.TimeString `json:"time,omitempty"`
}

func (r *FirstAvailableRequest) days() int {
	if r.DaysToSearch == nil {
		return defaultDaysToSearch
	}
	return *r.DaysToSearch
}

func fromDomain(slot *domain.FirstSlot) *FirstAvailableResponse {
	if !slot.Found {
		return &FirstAvailableResponse{Found: false}
	}
	date := types.FormatDate(slot.Date)
	t := slot.Time
	return &FirstAvailableResponse{Found: true, Date: &date, Time: &t}
}
