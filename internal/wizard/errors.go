package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrIncompleteDraft возвращается, когда для операции не хватает полей черновика; запрос не отправляется
	ErrIncompleteDraft = errors.New("wizard: draft is incomplete")

	// ErrInvalidStep возвращается, когда операция недоступна на текущем шаге
	ErrInvalidStep = errors.New("wizard: operation is not available at this step")

	// ErrInvalidTime возвращается при времени не в формате HH:MM
	ErrInvalidTime = errors.New("wizard: invalid time")

	// ErrSlotTaken выбранное время заняли между загрузкой слотов и отправкой
	ErrSlotTaken = errors.New("wizard: slot is no longer available")

	// ErrUnauthorized сессии нет или сервер её отверг; нужен повторный вход
	ErrUnauthorized = errors.New("wizard: authentication required")

	// ErrNotApproved аккаунт ещё не подтверждён администратором
	ErrNotApproved = errors.New("wizard: account is not approved")

	// ErrUnavailable сервис недоступен; можно повторить
	ErrUnavailable = errors.New("wizard: service unavailable, try again")

	// ErrRejected сервер отклонил запрос (закрытый день, время в прошлом, удалённая услуга)
	ErrRejected = errors.New("wizard: request rejected")

	// ErrNoSlotFound в заданном окне нет свободного времени
	ErrNoSlotFound = errors.New("wizard: no available slot found")

	// ErrStale ответ пришёл для услуги или мастера, которые уже сменились, и отброшен
	ErrStale = errors.New("wizard: response is stale")
)

// ConflictError время заняли до отправки записи
type ConflictError struct {
	Date   time.Time
	Time   string
	Detail string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%v: %s %s", ErrSlotTaken, types.FormatDate(e.Date), e.Time)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotTaken
}
