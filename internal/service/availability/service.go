package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service расчёт доступности мастера по сетке слотов, записям и закрытиям
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	closureRepo     ClosureRepository
	settings        SettingsProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает сервис доступности
func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	closureRepo ClosureRepository,
	settings SettingsProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		closureRepo:     closureRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Slots возвращает свободные слоты мастера на дату для услуги
// Закрытый день даёт пустой список, а не ошибку
func (s *Service) Slots(ctx context.Context, date time.Time, serviceID, staffID string) ([]types.TimeString, error) {
	day := types.DateOnly(date)
	s.logger.Info("Slots: date=%s, service=%s, staff=%s", types.FormatDate(day), serviceID, staffID)

	if err := validateIDs(serviceID, staffID); err != nil {
		return nil, err
	}

	var result []types.TimeString
	err := s.scan(ctx, serviceID, staffID, day, day, func(d time.Time, open bool, free []types.TimeString) bool {
		result = free
		return false
	})
	if err != nil {
		return nil, err
	}

	if result == nil {
		result = []types.TimeString{}
	}

	s.logger.Info("Slots: %d free slots on %s for staff=%s", len(result), types.FormatDate(day), staffID)
	return result, nil
}

// DaysStatus возвращает статус каждого дня диапазона [from, to]
func (s *Service) DaysStatus(ctx context.Context, serviceID, staffID string, from, to time.Time) ([]domain.DayStatusEntry, error) {
	from, to = types.DateOnly(from), types.DateOnly(to)
	s.logger.Info("DaysStatus: service=%s, staff=%s, range=%s..%s",
		serviceID, staffID, types.FormatDate(from), types.FormatDate(to))

	if err := validateIDs(serviceID, staffID); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidRange)
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > domain.MaxDaysStatusRange {
		return nil, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidRange, days, domain.MaxDaysStatusRange)
	}

	result := make([]domain.DayStatusEntry, 0)
	err := s.scan(ctx, serviceID, staffID, from, to, func(d time.Time, open bool, free []types.TimeString) bool {
		result = append(result, domain.DayStatusEntry{Date: d, Status: schedule.Status(open, free)})
		return true
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FirstAvailable ищет первый свободный слот начиная с сегодняшнего дня в пределах days дней
func (s *Service) FirstAvailable(ctx context.Context, serviceID, staffID string, days int) (*domain.FirstSlot, error) {
	s.logger.Info("FirstAvailable: service=%s, staff=%s, days=%d", serviceID, staffID, days)

	if err := validateIDs(serviceID, staffID); err != nil {
		return nil, err
	}
	if days < domain.MinFirstSearchDays || days > domain.MaxFirstSearchDays {
		return nil, fmt.Errorf("%w: days_to_search must be within %d..%d",
			ErrInvalidRange, domain.MinFirstSearchDays, domain.MaxFirstSearchDays)
	}

	from := types.DateOnly(s.timeProvider.Now())
	to := from.AddDate(0, 0, days-1)

	result := &domain.FirstSlot{}
	err := s.scan(ctx, serviceID, staffID, from, to, func(d time.Time, open bool, free []types.TimeString) bool {
		if len(free) == 0 {
			return true
		}
		result.Found = true
		result.Date = d
		result.Time = free[0]
		return false
	})
	if err != nil {
		return nil, err
	}

	if result.Found {
		s.logger.Info("FirstAvailable: found %s %s for staff=%s", types.FormatDate(result.Date), result.Time, staffID)
	} else {
		s.logger.Info("FirstAvailable: nothing free within %d days for staff=%s", days, staffID)
	}
	return result, nil
}

// IsDayOpen проверяет, что салон принимает записи в этот день
func (s *Service) IsDayOpen(ctx context.Context, date time.Time) (bool, *domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	day := types.DateOnly(date)
	closed, err := s.closedDays(ctx, day, day)
	if err != nil {
		return false, nil, err
	}

	return schedule.IsDayOpen(settings, day, s.timeProvider.Now(), closed[types.FormatDate(day)]), settings, nil
}

// CheckSlot проверяет, что интервал [start, start+duration) у мастера свободен
// excludeID исключает переносимую запись из проверки
// Вызывается внутри транзакции создания или переноса записи
func (s *Service) CheckSlot(ctx context.Context, staffID string, start time.Time, durationMinutes int, excludeID *string) (bool, error) {
	day := types.DateOnly(start)
	occupied, err := s.occupied(ctx, staffID, day, day.AddDate(0, 0, 1), excludeID)
	if err != nil {
		return false, err
	}

	return schedule.IsFree(start.UTC(), durationMinutes, occupied[types.FormatDate(day)]), nil
}

// scan проходит по дням диапазона, вызывая fn со свободными слотами дня; fn возвращает false, чтобы остановиться
func (s *Service) scan(
	ctx context.Context,
	serviceID, staffID string,
	from, to time.Time,
	fn func(day time.Time, open bool, free []types.TimeString) bool,
) error {
	service, err := s.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("scan: service id=%s not found", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("scan: failed to get service id=%s: %v", serviceID, err)
		return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("scan: failed to get settings: %v", err)
		return fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	closed, err := s.closedDays(ctx, from, to)
	if err != nil {
		return err
	}

	occupied, err := s.occupied(ctx, staffID, from, to.AddDate(0, 0, 1), nil)
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()
	for _, day := range schedule.Days(from, to) {
		key := types.FormatDate(day)

		open := schedule.IsDayOpen(settings, day, now, closed[key])
		var free []types.TimeString
		if open {
			free = schedule.FreeSlots(settings, day, now, service.DurationMinutes, occupied[key])
		}

		if !fn(day, open, free) {
			return nil
		}
	}

	return nil
}

// occupied занятые интервалы мастера по дням в [from, to)
func (s *Service) occupied(ctx context.Context, staffID string, from, to time.Time, excludeID *string) (map[string][]domain.Interval, error) {
	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		StaffID:   &staffID,
		From:      &from,
		To:        &to,
		ExcludeID: excludeID,
	})
	if err != nil {
		s.logger.Error("occupied: failed to get appointments of staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	ids := make([]string, 0, len(appointments))
	seen := make(map[string]bool)
	for _, a := range appointments {
		if !seen[a.ServiceID] {
			seen[a.ServiceID] = true
			ids = append(ids, a.ServiceID)
		}
	}

	durations, err := s.catalogRepo.ServiceDurations(ctx, ids)
	if err != nil {
		s.logger.Error("occupied: failed to get service durations: %v", err)
		return nil, fmt.Errorf("%w: failed to get service durations: %w", ErrInternal, err)
	}

	result := make(map[string][]domain.Interval)
	for day, list := range schedule.GroupByDay(appointments) {
		result[day] = schedule.Occupied(list, durations)
	}
	return result, nil
}

func (s *Service) closedDays(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	closures, err := s.closureRepo.List(ctx, &from, &to)
	if err != nil {
		s.logger.Error("closedDays: failed to get closures: %v", err)
		return nil, fmt.Errorf("%w: failed to get closures: %w", ErrInternal, err)
	}

	result := make(map[string]bool, len(closures))
	for _, c := range closures {
		result[types.FormatDate(c.Date)] = true
	}
	return result, nil
}

func validateIDs(serviceID, staffID string) error {
	if strings.TrimSpace(serviceID) == "" {
		return fmt.Errorf("%w: service_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(staffID) == "" {
		return fmt.Errorf("%w: staff_id is required", ErrInvalidInput)
	}
	return nil
}
