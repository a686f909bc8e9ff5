package reschedule_appointment

import "time"

// Request перенос записи её владельцем
type Request struct {
	AppointmentID string
	UserID        string
	DateTime      time.Time
}

// AdminRequest изменение записи администратором; nil-поля не меняются
type AdminRequest struct {
	AppointmentID string
	DateTime      *time.Time
	Status        *string
}
