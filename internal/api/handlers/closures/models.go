package closures

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ClosureRequest HTTP request model
type ClosureRequest struct {
	Date   string `json:"date"` // "2025-12-25"
	Reason string `json:"reason"`
}

type ClosureResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func fromDomain(c *domain.Closure) *ClosureResponse {
	return &ClosureResponse{ID: c.ID, Date: types.FormatDate(c.Date), Reason: c.Reason}
}
