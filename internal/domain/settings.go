package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// SettingsID идентификатор единственной записи настроек салона
const SettingsID = "app_settings"

// Settings represents the salon-wide booking configuration and landing texts
type Settings struct {
	ID              string
	HeroTitle       string
	HeroSubtitle    string
	HeroDescription string
	HeroImageURL    string
	AdminPhone      string
	TimeSlots       []types.TimeString // сетка слотов дня, по возрастанию
	WorkingDays     []int              // 0=Sunday .. 6=Saturday
	OpeningTime     types.TimeString
	ClosingTime     types.TimeString
}

// SettingsPatch частичное обновление настроек (nil = не менять)
type SettingsPatch struct {
	HeroTitle       *string
	HeroSubtitle    *string
	HeroDescription *string
	HeroImageURL    *string
	AdminPhone      *string
	TimeSlots       []types.TimeString
	WorkingDays     []int
	OpeningTime     *types.TimeString
	ClosingTime     *types.TimeString
}

// IsEmpty returns true if the patch changes nothing
func (p *SettingsPatch) IsEmpty() bool {
	return p.HeroTitle == nil && p.HeroSubtitle == nil && p.HeroDescription == nil &&
		p.HeroImageURL == nil && p.AdminPhone == nil && p.TimeSlots == nil &&
		p.WorkingDays == nil && p.OpeningTime == nil && p.ClosingTime == nil
}

// Apply applies the patch to the settings in place
func (s *Settings) Apply(p *SettingsPatch) {
	if p.HeroTitle != nil {
		s.HeroTitle = *p.HeroTitle
	}
	if p.HeroSubtitle != nil {
		s.HeroSubtitle = *p.HeroSubtitle
	}
	if p.HeroDescription != nil {
		s.HeroDescription = *p.HeroDescription
	}
	if p.HeroImageURL != nil {
		s.HeroImageURL = *p.HeroImageURL
	}
	if p.AdminPhone != nil {
		s.AdminPhone = *p.AdminPhone
	}
	if p.TimeSlots != nil {
		s.TimeSlots = p.TimeSlots
	}
	if p.WorkingDays != nil {
		s.WorkingDays = p.WorkingDays
	}
	if p.OpeningTime != nil {
		s.OpeningTime = *p.OpeningTime
	}
	if p.ClosingTime != nil {
		s.ClosingTime = *p.ClosingTime
	}
}

// IsWorkingDay returns true if the salon works on the weekday of date
func (s *Settings) IsWorkingDay(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range s.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// HasTimeSlot returns true if t is part of the configured slot grid
func (s *Settings) HasTimeSlot(t types.TimeString) bool {
	for _, slot := range s.TimeSlots {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}

// DefaultSettings настройки по умолчанию, когда записи в БД нет
func DefaultSettings() *Settings {
	slots := make([]types.TimeString, len(DefaultTimeSlots))
	for i, s := range DefaultTimeSlots {
		slots[i] = types.MustTimeString(s)
	}

	return &Settings{
		ID:              SettingsID,
		HeroTitle:       DefaultHeroTitle,
		HeroDescription: DefaultHeroDescription,
		HeroImageURL:    DefaultHeroImageURL,
		TimeSlots:       slots,
		WorkingDays:     append([]int(nil), DefaultWorkingDays...),
		OpeningTime:     types.MustTimeString(DefaultOpeningTime),
		ClosingTime:     types.MustTimeString(DefaultClosingTime),
	}
}
