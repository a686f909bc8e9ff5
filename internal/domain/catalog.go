package domain

import "time"

// Service represents a purchasable salon service
type Service struct {
	ID              string
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Staff represents a bookable provider
type Staff struct {
	ID          string
	Name        string
	Specialties []string
}

// Closure represents a day the salon is closed (holidays, vacations)
type Closure struct {
	ID     string
	Date   time.Time
	Reason string
}

// User represents a registered client or an administrator
type User struct {
	ID                      string
	Email                   string
	PasswordHash            string
	Name                    string
	Phone                   string
	IsAdmin                 bool
	IsApproved              bool
	NotificationPreferences []string
	CreatedAt               time.Time
}

// CanBook returns true if the user may book appointments online
func (u *User) CanBook() bool {
	return u.IsAdmin || u.IsApproved
}
