package catalog

import "time"

// ServiceInput данные для создания услуги
type ServiceInput struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
}

// ServicePatch частичное обновление услуги (nil = не менять)
type ServicePatch struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
}

// StaffPatch частичное обновление мастера
type StaffPatch struct {
	Name        *string
	Specialties []string
}

// ClosureInput данные для закрытия дня
type ClosureInput struct {
	Date   time.Time
	Reason string
}
