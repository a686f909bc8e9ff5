package wizard

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Step шаг мастера записи
type Step int

const (
	StepSelectService Step = iota + 1
	StepSelectStaff
	StepSelectDateTime
	StepSubmitting
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "select_service"
	case StepSelectStaff:
		return "select_staff"
	case StepSelectDateTime:
		return "select_date_time"
	case StepSubmitting:
		return "submitting"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Draft черновик записи
// Нулевая дата и пустое время означают "не выбрано"
type Draft struct {
	Service *salonapi.Service
	Staff   *salonapi.Staff
	Date    time.Time
	Time    string
}

// Complete true, когда заполнены все четыре поля
func (d Draft) Complete() bool {
	return d.Service != nil && d.Staff != nil && !d.Date.IsZero() && d.Time != ""
}

// DateTime время записи в UTC, "2025-06-10T09:00:00Z"
func (d Draft) DateTime() string {
	return types.FormatDate(d.Date) + "T" + d.Time + ":00Z"
}

// SlotAvailability свободные слоты для (дата, услуга, мастер)
// При ошибке загрузки Slots пуст, а Err выставлен: "неизвестно", а не "всё занято"
type SlotAvailability struct {
	Date      time.Time
	ServiceID string
	StaffID   string
	Slots     []string
	Loading   bool
	Err       error
}

// DayStatusMap раскраска календаря для пары (услуга, мастер); носит справочный характер
type DayStatusMap struct {
	ServiceID string
	StaffID   string
	Days      map[string]string // "2025-06-10" -> available | full | closed
	Loading   bool
	Err       error
}

func (m DayStatusMap) heldFor(serviceID, staffID string) bool {
	return m.ServiceID == serviceID && m.StaffID == staffID && (m.Loading || m.Days != nil && m.Err == nil)
}

// State снимок мастера для отрисовки; изменение снимка не влияет на мастер
type State struct {
	Step        Step
	Draft       Draft
	Services    []salonapi.Service
	Staff       []salonapi.Staff
	WorkingDays []int
	Slots       SlotAvailability
	Days        DayStatusMap
	LastError   error
	Created     *salonapi.Appointment
}

// HasSlot true, если t есть среди загруженных свободных слотов
func (s State) HasSlot(t string) bool {
	for _, slot := range s.Slots.Slots {
		if slot == t {
			return true
		}
	}
	return false
}

// CanProceed условие перехода с текущего шага
func (s State) CanProceed() bool {
	switch s.Step {
	case StepSelectService:
		return s.Draft.Service != nil
	case StepSelectStaff:
		return s.Draft.Staff != nil
	case StepSelectDateTime:
		return !s.Draft.Date.IsZero() && s.Draft.Time != ""
	default:
		return false
	}
}

// DayStatus статус дня из раскраски; пустая строка, если неизвестен
func (s State) DayStatus(date time.Time) string {
	return s.Days.Days[types.FormatDate(date)]
}

// IsWorkingDay день недели date входит в рабочие дни салона
func (s State) IsWorkingDay(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range s.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

type slotKey struct {
	date      string
	serviceID string
	staffID   string
}

type dayKey struct {
	serviceID string
	staffID   string
}
