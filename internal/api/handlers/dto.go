package handlers

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentResponse запись в ответах API
type AppointmentResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	UserPhone   string `json:"user_phone"`
	UserEmail   string `json:"user_email,omitempty"`
	StaffID     string `json:"staff_id"`
	StaffName   string `json:"staff_name"`
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	DateTime    string `json:"date_time"`
	Status      string `json:"status"`
	IsManual    bool   `json:"is_manual"`
	CreatedAt   string `json:"created_at"`
}

func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		UserName:    a.UserName,
		UserPhone:   a.UserPhone,
		UserEmail:   a.UserEmail,
		StaffID:     a.StaffID,
		StaffName:   a.StaffName,
		ServiceID:   a.ServiceID,
		ServiceName: a.ServiceName,
		DateTime:    a.DateTime.UTC().Format(time.RFC3339),
		Status:      string(a.Status),
		IsManual:    a.IsManual,
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func FromDomainAppointments(items []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(items))
	for _, a := range items {
		result = append(result, FromDomainAppointment(a))
	}
	return result
}

// UserResponse профиль пользователя без хеша пароля
type UserResponse struct {
	ID                      string   `json:"id"`
	Email                   string   `json:"email"`
	Name                    string   `json:"name"`
	Phone                   string   `json:"phone"`
	IsAdmin                 bool     `json:"is_admin"`
	IsApproved              bool     `json:"is_approved"`
	NotificationPreferences []string `json:"notification_preferences"`
	CreatedAt               string   `json:"created_at"`
}

func FromDomainUser(u *domain.User) *UserResponse {
	prefs := u.NotificationPreferences
	if prefs == nil {
		prefs = []string{}
	}
	return &UserResponse{
		ID:                      u.ID,
		Email:                   u.Email,
		Name:                    u.Name,
		Phone:                   u.Phone,
		IsAdmin:                 u.IsAdmin,
		IsApproved:              u.IsApproved,
		NotificationPreferences: prefs,
		CreatedAt:               u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ParseDateTime разбирает RFC 3339; время без зоны считается UTC
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	}
	return t, err
}

// SettingsResponse настройки салона
type SettingsResponse struct {
	HeroTitle       string             `json:"hero_title"`
	HeroSubtitle    string             `json:"hero_subtitle"`
	HeroDescription string             `json:"hero_description"`
	HeroImageURL    string             `json:"hero_image_url"`
	AdminPhone      string             `json:"admin_phone"`
	TimeSlots       []types.TimeString `json:"time_slots"`
	WorkingDays     []int              `json:"working_days"`
	OpeningTime     types.TimeString   `json:"opening_time"`
	ClosingTime     types.TimeString   `json:"closing_time"`
}

func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	slots := s.TimeSlots
	if slots == nil {
		slots = []types.TimeString{}
	}
	days := s.WorkingDays
	if days == nil {
		days = []int{}
	}
	return &SettingsResponse{
		HeroTitle:       s.HeroTitle,
		HeroSubtitle:    s.HeroSubtitle,
		HeroDescription: s.HeroDescription,
		HeroImageURL:    s.HeroImageURL,
		AdminPhone:      s.AdminPhone,
		TimeSlots:       slots,
		WorkingDays:     days,
		OpeningTime:     s.OpeningTime,
		ClosingTime:     s.ClosingTime,
	}
}
