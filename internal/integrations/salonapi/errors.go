package salonapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized возвращается при 401; сессия после этого недействительна
	ErrUnauthorized = errors.New("salonapi: unauthorized")

	// ErrForbidden возвращается при 403
	ErrForbidden = errors.New("salonapi: forbidden")

	// ErrNotApproved возвращается при 403 с кодом not_approved
	ErrNotApproved = errors.New("salonapi: account is not approved")

	// ErrNotFound возвращается при 404
	ErrNotFound = errors.New("salonapi: not found")

	// ErrConflict возвращается при 409 (например, время уже занято)
	ErrConflict = errors.New("salonapi: conflict")

	// ErrBadRequest возвращается при 400 и 422
	ErrBadRequest = errors.New("salonapi: bad request")

	// ErrTransport возвращается при сетевых ошибках и ответах 5xx; запрос можно повторить
	ErrTransport = errors.New("salonapi: transport failure")

	// ErrInvalidResponse возвращается, когда ответ не удалось разобрать
	ErrInvalidResponse = errors.New("salonapi: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonapi client: internal error")
)

// APIError ответ сервера с ошибкой
// errors.Is сопоставляет его с одной из ошибок-классов выше
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
	kinds      []error
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: status %d", e.kinds[0], e.StatusCode)
	}
	return fmt.Sprintf("%v: status %d: %s", e.kinds[0], e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() []error {
	return e.kinds
}
