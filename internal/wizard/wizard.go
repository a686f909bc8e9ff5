package wizard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const defaultDayStatusMonths = 6

// Wizard пошаговая запись клиента: услуга -> мастер -> дата и время -> отправка
//
// Слоты и раскраска дней загружаются в фоне. Каждая загрузка помечается номером и ключом
// черновика, для которого она выдана; результат применяется, только если номер последний
// и ключ совпадает с текущим черновиком. Остальные ответы отбрасываются.
type Wizard struct {
	api             API
	session         *salonapi.Session
	clock           Clock
	logger          Logger
	baseCtx         context.Context
	dayStatusMonths int
	onChange        func(State)

	mu sync.Mutex
	wg sync.WaitGroup

	step        Step
	draft       Draft
	services    []salonapi.Service
	staff       []salonapi.Staff
	workingDays []int
	slots       SlotAvailability
	days        DayStatusMap
	lastErr     error
	created     *salonapi.Appointment

	slotSeq  uint64
	daySeq   uint64
	firstSeq uint64 // растёт при любом изменении черновика пользователем
}

// New создает мастер на шаге выбора услуги
// session может быть nil: просмотр работает, отправка вернёт ErrUnauthorized
func New(api API, session *salonapi.Session, logger Logger) *Wizard {
	return &Wizard{
		api:             api,
		session:         session,
		clock:           realClock{},
		logger:          logger,
		baseCtx:         context.Background(),
		dayStatusMonths: defaultDayStatusMonths,
		step:            StepSelectService,
	}
}

// WithClock подменяет источник времени (для тестов)
func (w *Wizard) WithClock(c Clock) *Wizard {
	w.clock = c
	return w
}

// WithContext контекст фоновых загрузок
func (w *Wizard) WithContext(ctx context.Context) *Wizard {
	w.baseCtx = ctx
	return w
}

// WithDayStatusMonths глубина раскраски календаря от сегодняшнего дня
func (w *Wizard) WithDayStatusMonths(months int) *Wizard {
	if months > 0 {
		w.dayStatusMonths = months
	}
	return w
}

// WithOnChange вызывается со снимком после каждого изменения
// Может вызываться из фоновых горутин
func (w *Wizard) WithOnChange(fn func(State)) *Wizard {
	w.onChange = fn
	return w
}

// Load загружает услуги, мастеров и рабочие дни салона
func (w *Wizard) Load(ctx context.Context) error {
	services, err := w.api.Services(ctx, w.session)
	if err != nil {
		return w.fail("Load services", err)
	}
	staff, err := w.api.Staff(ctx, w.session)
	if err != nil {
		return w.fail("Load staff", err)
	}
	settings, err := w.api.Settings(ctx, w.session)
	if err != nil {
		return w.fail("Load settings", err)
	}

	w.mu.Lock()
	w.services = services
	w.staff = staff
	w.workingDays = settings.WorkingDays
	w.lastErr = nil
	w.unlockAndNotify()

	w.logger.Info("Load: %d services, %d staff, working days %v", len(services), len(staff), settings.WorkingDays)
	return nil
}

// State снимок текущего состояния
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Wait ждёт завершения фоновых загрузок
func (w *Wizard) Wait() {
	w.wg.Wait()
}

// SelectService выбирает услугу; шаг не меняется
func (w *Wizard) SelectService(svc salonapi.Service) {
	w.mu.Lock()
	defer w.unlockAndNotify()

	if !w.editable() {
		return
	}
	if w.draft.Service != nil && w.draft.Service.ID == svc.ID {
		return
	}

	w.draft.Service = &svc
	w.firstSeq++
	w.pairChanged()
}

// SelectStaff выбирает мастера; шаг не меняется
func (w *Wizard) SelectStaff(staff salonapi.Staff) {
	w.mu.Lock()
	defer w.unlockAndNotify()

	if !w.editable() {
		return
	}
	if w.draft.Staff != nil && w.draft.Staff.ID == staff.ID {
		return
	}

	w.draft.Staff = &staff
	w.firstSeq++
	w.pairChanged()
}

// SelectDate выбирает день, сбрасывает время и перезагружает слоты
func (w *Wizard) SelectDate(date time.Time) {
	w.mu.Lock()
	defer w.unlockAndNotify()

	if !w.editable() {
		return
	}

	w.draft.Date = types.DateOnly(date)
	w.draft.Time = ""
	w.firstSeq++
	w.lastErr = nil
	w.refetchSlots()
}

// SelectTime выбирает время "HH:MM"
// Наличие времени среди свободных слотов не проверяется, см. State.HasSlot
func (w *Wizard) SelectTime(t string) error {
	ts, err := types.NewTimeStringFromString(t)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}

	w.mu.Lock()
	defer w.unlockAndNotify()

	if !w.editable() {
		return ErrInvalidStep
	}

	w.draft.Time = ts.String()
	w.firstSeq++
	w.lastErr = nil
	return nil
}

// Advance переходит на следующий шаг, если поле текущего шага заполнено
// С шага даты и времени дальше только Submit
func (w *Wizard) Advance() bool {
	w.mu.Lock()
	defer w.unlockAndNotify()

	switch w.step {
	case StepSelectService:
		if w.draft.Service == nil {
			return false
		}
		w.step = StepSelectStaff
		return true

	case StepSelectStaff:
		if w.draft.Staff == nil {
			return false
		}
		w.step = StepSelectDateTime
		if !w.days.heldFor(w.draft.Service.ID, w.draft.Staff.ID) {
			w.refetchDays()
		}
		return true

	default:
		return false
	}
}

// Retreat возвращает на предыдущий шаг; ниже первого шага не уходит
func (w *Wizard) Retreat() {
	w.mu.Lock()
	defer w.unlockAndNotify()

	switch w.step {
	case StepSelectStaff:
		w.step = StepSelectService
	case StepSelectDateTime:
		w.step = StepSelectStaff
	}
}

// Reset начинает новую запись после успешной отправки
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.unlockAndNotify()

	if w.step == StepSubmitting {
		return
	}

	w.step = StepSelectService
	w.draft = Draft{}
	w.created = nil
	w.lastErr = nil
	w.firstSeq++
	w.slotSeq++
	w.slots = SlotAvailability{}
	w.daySeq++
	w.days = DayStatusMap{}
}

// RefreshSlots повторяет загрузку слотов, например после ошибки
func (w *Wizard) RefreshSlots() bool {
	w.mu.Lock()
	defer w.unlockAndNotify()

	if !w.editable() {
		return false
	}
	if _, ok := w.slotKey(); !ok {
		return false
	}
	w.refetchSlots()
	return true
}

// RefreshDayStatus повторяет загрузку раскраски дней
func (w *Wizard) RefreshDayStatus() bool {
	w.mu.Lock()
	defer w.unlockAndNotify()

	if !w.editable() {
		return false
	}
	if _, ok := w.dayKey(); !ok {
		return false
	}
	w.refetchDays()
	return true
}

// FindFirstAvailable ищет первое свободное время в пределах withinDays дней
// и сразу выставляет его в черновик; если ничего нет, черновик не меняется
func (w *Wizard) FindFirstAvailable(ctx context.Context, withinDays int) error {
	w.mu.Lock()
	if !w.editable() {
		w.mu.Unlock()
		return ErrInvalidStep
	}
	key, ok := w.dayKey()
	seq := w.firstSeq
	w.mu.Unlock()
	if !ok {
		return ErrIncompleteDraft
	}

	found, err := w.api.FirstAvailable(ctx, w.session, key.serviceID, key.staffID, withinDays)
	if err != nil {
		return w.fail("FindFirstAvailable", err)
	}

	w.mu.Lock()
	if current, ok := w.dayKey(); !ok || current != key || seq != w.firstSeq || !w.editable() {
		w.mu.Unlock()
		w.logger.Info("FindFirstAvailable: result for service=%s, staff=%s discarded as stale", key.serviceID, key.staffID)
		return ErrStale
	}

	if !found.Found {
		w.lastErr = ErrNoSlotFound
		w.unlockAndNotify()
		w.logger.Info("FindFirstAvailable: nothing free within %d days", withinDays)
		return ErrNoSlotFound
	}

	date, dateErr := types.ParseDate(found.Date)
	ts, timeErr := types.NewTimeStringFromString(found.Time)
	if dateErr != nil || timeErr != nil {
		w.mu.Unlock()
		w.logger.Error("FindFirstAvailable: malformed result date=%q, time=%q", found.Date, found.Time)
		return fmt.Errorf("%w: malformed first slot %q %q", ErrUnavailable, found.Date, found.Time)
	}

	w.draft.Date = date
	w.refetchSlots()
	w.draft.Time = ts.String()
	w.lastErr = nil
	w.unlockAndNotify()

	w.logger.Info("FindFirstAvailable: selected %s %s", found.Date, found.Time)
	return nil
}

// Submit отправляет запись
// Конфликт возвращает *ConflictError: мастер остаётся на шаге даты и времени, время сбрасывается, слоты перезагружаются
func (w *Wizard) Submit(ctx context.Context) (*salonapi.Appointment, error) {
	w.mu.Lock()
	if w.step != StepSelectDateTime {
		w.mu.Unlock()
		return nil, ErrInvalidStep
	}
	if !w.draft.Complete() {
		w.mu.Unlock()
		return nil, ErrIncompleteDraft
	}
	if !w.session.Valid() {
		w.lastErr = ErrUnauthorized
		w.unlockAndNotify()
		return nil, ErrUnauthorized
	}

	draft := w.draft
	req := &salonapi.CreateAppointmentRequest{
		ServiceID: draft.Service.ID,
		StaffID:   draft.Staff.ID,
		DateTime:  draft.DateTime(),
	}
	w.step = StepSubmitting
	w.firstSeq++
	w.lastErr = nil
	w.unlockAndNotify()

	w.logger.Info("Submit: service=%s, staff=%s, date_time=%s", req.ServiceID, req.StaffID, req.DateTime)
	appointment, err := w.api.CreateAppointment(ctx, w.session, req)

	w.mu.Lock()
	if err == nil {
		w.step = StepSuccess
		w.created = appointment
		w.draft = Draft{}
		w.slotSeq++
		w.slots = SlotAvailability{}
		w.daySeq++
		w.days = DayStatusMap{}
		w.unlockAndNotify()

		w.logger.Info("Submit: appointment id=%s created", appointment.ID)
		return appointment, nil
	}

	w.step = StepSelectDateTime

	var result error
	if errors.Is(err, salonapi.ErrConflict) {
		conflict := &ConflictError{Date: draft.Date, Time: draft.Time}
		var apiErr *salonapi.APIError
		if errors.As(err, &apiErr) {
			conflict.Detail = apiErr.Detail
		}
		result = conflict

		w.draft.Time = ""
		w.refetchSlots()
		w.refetchDays()
		w.logger.Warn("Submit: %s %s was taken, reselect required", types.FormatDate(draft.Date), draft.Time)
	} else {
		result = classify(err)
		w.logger.Warn("Submit: failed: %v", err)
	}

	w.lastErr = result
	w.unlockAndNotify()
	return nil, result
}

// editable черновик можно менять на шагах выбора
func (w *Wizard) editable() bool {
	return w.step == StepSelectService || w.step == StepSelectStaff || w.step == StepSelectDateTime
}

// pairChanged сбрасывает всё, что зависит от пары (услуга, мастер)
func (w *Wizard) pairChanged() {
	w.draft.Time = ""
	w.lastErr = nil

	w.daySeq++
	w.days = DayStatusMap{}
	if w.step == StepSelectDateTime {
		w.refetchDays()
	}

	w.refetchSlots()
}

func (w *Wizard) slotKey() (slotKey, bool) {
	if w.draft.Service == nil || w.draft.Staff == nil || w.draft.Date.IsZero() {
		return slotKey{}, false
	}
	return slotKey{
		date:      types.FormatDate(w.draft.Date),
		serviceID: w.draft.Service.ID,
		staffID:   w.draft.Staff.ID,
	}, true
}

func (w *Wizard) dayKey() (dayKey, bool) {
	if w.draft.Service == nil || w.draft.Staff == nil {
		return dayKey{}, false
	}
	return dayKey{serviceID: w.draft.Service.ID, staffID: w.draft.Staff.ID}, true
}

// refetchSlots сбрасывает слоты и, если ключ полный, запускает загрузку
func (w *Wizard) refetchSlots() {
	w.slotSeq++

	key, ok := w.slotKey()
	if !ok {
		w.slots = SlotAvailability{}
		return
	}

	w.slots = SlotAvailability{
		Date:      w.draft.Date,
		ServiceID: key.serviceID,
		StaffID:   key.staffID,
		Loading:   true,
	}

	seq, date := w.slotSeq, w.draft.Date
	w.wg.Add(1)
	go w.fetchSlots(seq, key, date)
}

func (w *Wizard) fetchSlots(seq uint64, key slotKey, date time.Time) {
	defer w.wg.Done()

	slots, err := w.api.Slots(w.baseCtx, w.session, date, key.serviceID, key.staffID)

	w.mu.Lock()
	if current, ok := w.slotKey(); seq != w.slotSeq || !ok || current != key {
		w.mu.Unlock()
		w.logger.Info("fetchSlots: slots for date=%s, service=%s, staff=%s discarded as stale",
			key.date, key.serviceID, key.staffID)
		return
	}

	w.slots.Loading = false
	if err != nil {
		w.slots.Slots = []string{}
		w.slots.Err = classify(err)
		w.logger.Warn("fetchSlots: date=%s, staff=%s: %v", key.date, key.staffID, err)
	} else {
		w.slots.Slots = slots
		w.slots.Err = nil
	}
	w.unlockAndNotify()
}

// refetchDays запускает одну загрузку раскраски на весь диапазон для текущей пары
func (w *Wizard) refetchDays() {
	w.daySeq++

	key, ok := w.dayKey()
	if !ok {
		w.days = DayStatusMap{}
		return
	}

	w.days = DayStatusMap{ServiceID: key.serviceID, StaffID: key.staffID, Loading: true}

	from := types.DateOnly(w.clock.Now())
	to := from.AddDate(0, w.dayStatusMonths, 0)

	seq := w.daySeq
	w.wg.Add(1)
	go w.fetchDays(seq, key, from, to)
}

func (w *Wizard) fetchDays(seq uint64, key dayKey, from, to time.Time) {
	defer w.wg.Done()

	entries, err := w.api.DaysStatus(w.baseCtx, w.session, key.serviceID, key.staffID, from, to)

	w.mu.Lock()
	if current, ok := w.dayKey(); seq != w.daySeq || !ok || current != key {
		w.mu.Unlock()
		w.logger.Info("fetchDays: day status for service=%s, staff=%s discarded as stale", key.serviceID, key.staffID)
		return
	}

	w.days.Loading = false
	w.days.Days = make(map[string]string, len(entries))
	if err != nil {
		w.days.Err = classify(err)
		w.logger.Warn("fetchDays: service=%s, staff=%s: %v", key.serviceID, key.staffID, err)
	} else {
		for _, e := range entries {
			w.days.Days[e.Date] = e.Status
		}
		w.days.Err = nil
	}
	w.unlockAndNotify()
}

func (w *Wizard) fail(op string, err error) error {
	mapped := classify(err)
	w.logger.Warn("%s: %v", op, err)

	w.mu.Lock()
	w.lastErr = mapped
	w.unlockAndNotify()
	return mapped
}

// unlockAndNotify снимает блокировку и отдаёт снимок подписчику
func (w *Wizard) unlockAndNotify() {
	state := w.snapshot()
	fn := w.onChange
	w.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

func (w *Wizard) snapshot() State {
	state := State{
		Step:        w.step,
		Draft:       w.draft,
		Services:    slices.Clone(w.services),
		Staff:       slices.Clone(w.staff),
		WorkingDays: slices.Clone(w.workingDays),
		Slots:       w.slots,
		Days:        w.days,
		LastError:   w.lastErr,
		Created:     w.created,
	}
	state.Slots.Slots = slices.Clone(w.slots.Slots)
	state.Days.Days = maps.Clone(w.days.Days)

	if w.draft.Service != nil {
		svc := *w.draft.Service
		state.Draft.Service = &svc
	}
	if w.draft.Staff != nil {
		staff := *w.draft.Staff
		state.Draft.Staff = &staff
	}
	return state
}

// classify переводит ошибки клиента API в ошибки мастера
func classify(err error) error {
	switch {
	case errors.Is(err, salonapi.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, salonapi.ErrNotApproved):
		return fmt.Errorf("%w: %v", ErrNotApproved, err)
	case errors.Is(err, salonapi.ErrBadRequest),
		errors.Is(err, salonapi.ErrNotFound),
		errors.Is(err, salonapi.ErrForbidden),
		errors.Is(err, salonapi.ErrConflict):
		return fmt.Errorf("%w: %v", ErrRejected, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
