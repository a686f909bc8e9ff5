package get_available_slots

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// AvailableSlotsRequest HTTP request model
type AvailableSlotsRequest struct {
	Date      string `json:"date"` // "2025-06-10"
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string             `json:"date"`
	AvailableSlots []types.TimeString `json:"available_slots"`
}
