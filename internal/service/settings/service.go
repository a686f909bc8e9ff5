package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	cacheSettings "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/settings"
	settingsRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settings"
)

var phoneRe = regexp.MustCompile(domain.PhonePattern)

// Service сервис настроек салона: чтение через кэш, частичное обновление
type Service struct {
	repo   SettingsRepository
	cache  SettingsCache
	logger Logger
}

// NewService создает сервис настроек
func NewService(repo SettingsRepository, cache SettingsCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get возвращает настройки; если они ещё не сохранялись, отдаются значения по умолчанию
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cacheSettings.ErrCacheMiss) {
		s.logger.Warn("Get: settings cache unavailable: %v", err)
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Get: repository error: %v", err)
			return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Get: settings not saved yet, using defaults")
		settings = domain.DefaultSettings()
	}

	if err := s.cache.Set(ctx, settings); err != nil {
		s.logger.Warn("Get: failed to cache settings: %v", err)
	}

	return settings, nil
}

// Update применяет частичное обновление и сохраняет настройки целиком
func (s *Service) Update(ctx context.Context, patch *domain.SettingsPatch) (*domain.Settings, error) {
	s.logger.Info("Update: updating settings")

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		current = domain.DefaultSettings()
	}

	current.Apply(patch)

	if err := validate(current); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.repo.Upsert(ctx, current); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Update: failed to invalidate settings cache: %v", err)
	}

	s.logger.Info("Update: settings saved, %d time slots, working days %v", len(current.TimeSlots), current.WorkingDays)
	return current, nil
}

func validate(s *domain.Settings) error {
	for i, slot := range s.TimeSlots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: time slot #%d: %v", ErrInvalidInput, i, err)
		}
		if i > 0 && !s.TimeSlots[i-1].IsBefore(slot) {
			return fmt.Errorf("%w: time slots must be strictly ascending", ErrInvalidInput)
		}
	}

	seen := make(map[int]bool, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day %d out of range 0..6", ErrInvalidInput, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate working day %d", ErrInvalidInput, d)
		}
		seen[d] = true
	}

	if !s.OpeningTime.IsZero() && !s.ClosingTime.IsZero() && !s.OpeningTime.IsBefore(s.ClosingTime) {
		return fmt.Errorf("%w: opening_time must be before closing_time", ErrInvalidInput)
	}

	if s.AdminPhone != "" && !phoneRe.MatchString(s.AdminPhone) {
		return fmt.Errorf("%w: admin_phone must match %s", ErrInvalidInput, domain.PhonePattern)
	}

	return nil
}
