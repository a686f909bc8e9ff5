package salonapi

// Статусы дня в ответе days-status
const (
	DayAvailable = "available"
	DayFull      = "full"
	DayClosed    = "closed"
)

// Service услуга салона
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Staff мастер
type Staff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
}

// Settings настройки салона; клиенту нужны сетка слотов и рабочие дни
type Settings struct {
	TimeSlots   []string `json:"time_slots"`
	WorkingDays []int    `json:"working_days"` // 0=воскресенье
	OpeningTime string   `json:"opening_time"`
	ClosingTime string   `json:"closing_time"`
	AdminPhone  string   `json:"admin_phone"`
	HeroTitle   string   `json:"hero_title"`
}

// User профиль пользователя
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsAdmin    bool   `json:"is_admin"`
	IsApproved bool   `json:"is_approved"`
}

// Appointment запись
type Appointment struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	StaffID     string `json:"staff_id"`
	StaffName   string `json:"staff_name"`
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	DateTime    string `json:"date_time"`
	Status      string `json:"status"`
	IsManual    bool   `json:"is_manual"`
}

// DayStatus статус одного дня
type DayStatus struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// FirstSlot результат поиска первого свободного времени
type FirstSlot struct {
	Found bool   `json:"found"`
	Date  string `json:"date,omitempty"`
	Time  string `json:"time,omitempty"`
}

// RegisterRequest данные регистрации
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// CreateAppointmentRequest запрос на запись; DateTime в формате 2025-06-10T09:00:00Z
type CreateAppointmentRequest struct {
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	DateTime  string `json:"date_time"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

type slotsRequest struct {
	Date      string `json:"date"`
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
}

type slotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

type daysStatusRequest struct {
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type firstAvailableRequest struct {
	ServiceID    string `json:"service_id"`
	StaffID      string `json:"staff_id"`
	DaysToSearch int    `json:"days_to_search"`
}

// errorResponse тело ошибки сервера
type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}
