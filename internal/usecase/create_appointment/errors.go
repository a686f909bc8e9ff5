package create_appointment

import "errors"

var (
	// ErrUserNotFound возвращается, когда клиент из токена не найден
	ErrUserNotFound = errors.New("create_appointment: user not found")

	// ErrNotApproved возвращается, когда клиент ещё не подтверждён администратором
	ErrNotApproved = errors.New("create_appointment: user is not approved for online booking")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrPastDateTime возвращается, когда время записи не в будущем
	ErrPastDateTime = errors.New("create_appointment: appointment time must be in the future")

	// ErrDayClosed возвращается, когда салон не работает в этот день
	ErrDayClosed = errors.New("create_appointment: salon is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом сетки
	ErrInvalidTimeSlot = errors.New("create_appointment: time is not a configured slot")

	// ErrSlotNotAvailable возвращается, когда интервал мастера уже занят
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
