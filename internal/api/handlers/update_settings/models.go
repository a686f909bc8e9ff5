package update_settings

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UpdateSettingsRequest HTTP request model, все поля опциональны
type UpdateSettingsRequest struct {
	HeroTitle       *string            `json:"hero_title,omitempty"`
	HeroSubtitle    *string            `json:"hero_subtitle,omitempty"`
	HeroDescription *string            `json:"hero_description,omitempty"`
	HeroImageURL    *string            `json:"hero_image_url,omitempty"`
	AdminPhone      *string            `json:"admin_phone,omitempty"`
	TimeSlots       []types.TimeString `json:"time_slots,omitempty"`
	WorkingDays     []int              `json:"working_days,omitempty"`
	OpeningTime     *types.TimeString  `json:"opening_time,omitempty"`
	ClosingTime     *types.TimeString  `json:"closing_time,omitempty"`
}

// ToDomain конвертирует HTTP запрос в частичное обновление
func (r *UpdateSettingsRequest) ToDomain() *domain.SettingsPatch {
	return &domain.SettingsPatch{
		HeroTitle:       r.HeroTitle,
		HeroSubtitle:    r.HeroSubtitle,
		HeroDescription: r.HeroDescription,
		HeroImageURL:    r.HeroImageURL,
		AdminPhone:      r.AdminPhone,
		TimeSlots:       r.TimeSlots,
		WorkingDays:     r.WorkingDays,
		OpeningTime:     r.OpeningTime,
		ClosingTime:     r.ClosingTime,
	}
}
