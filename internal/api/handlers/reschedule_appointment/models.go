package reschedule_appointment

// RescheduleRequest перенос записи клиентом
type RescheduleRequest struct {
	DateTime string `json:"date_time"`
}

// UpdateAppointmentRequest изменение записи администратором
type UpdateAppointmentRequest struct {
	DateTime *string `json:"date_time,omitempty"`
	Status   *string `json:"status,omitempty"`
}
