// Package schedule содержит чистые функции расчёта доступности мастера:
// занятые интервалы, свободные слоты дня и статус дня для календаря.
package schedule

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Occupied строит занятые интервалы по активным записям
// durations: длительность услуги в минутах по её ID; удалённая услуга считается за 30 минут
func Occupied(appointments []*domain.Appointment, durations map[string]int) []domain.Interval {
	result := make([]domain.Interval, 0, len(appointments))

	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}

		minutes, ok := durations[a.ServiceID]
		if !ok || minutes <= 0 {
			minutes = domain.DefaultServiceDurationMinutes
		}

		start := a.DateTime.UTC()
		result = append(result, domain.Interval{
			Start: start,
			End:   start.Add(time.Duration(minutes) * time.Minute),
		})
	}

	return result
}

// IsFree проверяет, что интервал [start, start+duration) не пересекается ни с одним занятым
// Граничащие интервалы пересечением не считаются
func IsFree(start time.Time, durationMinutes int, occupied []domain.Interval) bool {
	requested := domain.Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}

	for _, occ := range occupied {
		if requested.Overlaps(occ) {
			return false
		}
	}
	return true
}

// IsDayOpen день открыт для записи: не в прошлом, рабочий день недели и нет закрытия
func IsDayOpen(settings *domain.Settings, date, now time.Time, closed bool) bool {
	day := types.DateOnly(date)
	if day.Before(types.DateOnly(now)) {
		return false
	}
	if closed {
		return false
	}
	return settings.IsWorkingDay(day)
}

// FreeSlots возвращает свободные слоты из сетки настроек в порядке сетки
// Для сегодняшнего дня слоты, начало которых уже наступило, не предлагаются
func FreeSlots(
	settings *domain.Settings,
	date time.Time,
	now time.Time,
	durationMinutes int,
	occupied []domain.Interval,
) []types.TimeString {
	day := types.DateOnly(date)
	today := types.SameDay(day, now.UTC())

	result := make([]types.TimeString, 0, len(settings.TimeSlots))
	for _, slot := range settings.TimeSlots {
		start := slot.On(day)
		if today && !start.After(now) {
			continue
		}
		if !IsFree(start, durationMinutes, occupied) {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// Status агрегированный статус дня
func Status(open bool, free []types.TimeString) domain.DayStatus {
	switch {
	case !open:
		return domain.DayClosed
	case len(free) == 0:
		return domain.DayFull
	default:
		return domain.DayAvailable
	}
}

// GroupByDay раскладывает записи по календарным дням (UTC)
func GroupByDay(appointments []*domain.Appointment) map[string][]*domain.Appointment {
	result := make(map[string][]*domain.Appointment)
	for _, a := range appointments {
		key := types.FormatDate(a.DateTime.UTC())
		result[key] = append(result[key], a)
	}
	return result
}

// Days перечисляет дни диапазона [from, to] включительно
func Days(from, to time.Time) []time.Time {
	from, to = types.DateOnly(from), types.DateOnly(to)
	if to.Before(from) {
		return nil
	}

	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
