package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("reschedule_appointment: access denied to this appointment")

	// ErrInvalidStatus возвращается при попытке перенести отменённую запись или неизвестном статусе
	ErrInvalidStatus = errors.New("reschedule_appointment: invalid appointment status")

	// ErrPastDateTime возвращается, когда новое время не в будущем
	ErrPastDateTime = errors.New("reschedule_appointment: appointment time must be in the future")

	// ErrDayClosed возвращается, когда салон не работает в новый день
	ErrDayClosed = errors.New("reschedule_appointment: salon is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда новое время не совпадает со слотом сетки
	ErrInvalidTimeSlot = errors.New("reschedule_appointment: time is not a configured slot")

	// ErrSlotNotAvailable возвращается, когда новый интервал мастера занят
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
