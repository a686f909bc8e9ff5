package create_appointment

import "time"

// Request запись клиента на услугу к мастеру
type Request struct {
	UserID    string    // ID клиента из токена
	ServiceID string    // ID услуги
	StaffID   string    // ID мастера
	DateTime  time.Time // Начало записи (UTC)
}

// ManualRequest запись, внесённая администратором (клиент без аккаунта)
type ManualRequest struct {
	ClientName  string
	ClientPhone string
	ClientEmail string // опционально
	ServiceID   string
	StaffID     string
	DateTime    time.Time
}

// Исходы бронирования для метрик
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
