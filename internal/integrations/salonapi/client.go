package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	dateLayout       = "2006-01-02"
	maxErrorBodySize = 64 << 10
)

// Client REST-клиент API салона
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента; baseURL без завершающего /api
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ============================================================
// Идентификация
// ============================================================

// Login входит по email и паролю и возвращает новую сессию
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, &loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return c.session(&resp)
}

// Register регистрирует клиента и возвращает новую сессию
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*Session, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return c.session(&resp)
}

// Me профиль текущего пользователя
func (c *Client) Me(ctx context.Context, s *Session) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", s, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) session(resp *tokenResponse) (*Session, error) {
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}
	return NewSession(resp.AccessToken, resp.User), nil
}

// ============================================================
// Справочник
// ============================================================

// Services список услуг
func (c *Client) Services(ctx context.Context, s *Session) ([]Service, error) {
	var result []Service
	if err := c.do(ctx, http.MethodGet, "/api/services", s, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Staff список мастеров
func (c *Client) Staff(ctx context.Context, s *Session) ([]Staff, error) {
	var result []Staff
	if err := c.do(ctx, http.MethodGet, "/api/staff", s, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Settings настройки салона
func (c *Client) Settings(ctx context.Context, s *Session) (*Settings, error) {
	var result Settings
	if err := c.do(ctx, http.MethodGet, "/api/settings", s, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================
// Доступность
// ============================================================

// Slots свободные слоты мастера на дату ("HH:MM" по возрастанию)
func (c *Client) Slots(ctx context.Context, s *Session, date time.Time, serviceID, staffID string) ([]string, error) {
	req := &slotsRequest{Date: date.Format(dateLayout), ServiceID: serviceID, StaffID: staffID}

	var resp slotsResponse
	if err := c.do(ctx, http.MethodPost, "/api/availability", s, req, &resp); err != nil {
		return nil, err
	}
	if resp.AvailableSlots == nil {
		return []string{}, nil
	}
	return resp.AvailableSlots, nil
}

// DaysStatus статусы дней диапазона [from, to] одним запросом
func (c *Client) DaysStatus(ctx context.Context, s *Session, serviceID, staffID string, from, to time.Time) ([]DayStatus, error) {
	req := &daysStatusRequest{
		ServiceID: serviceID,
		StaffID:   staffID,
		StartDate: from.Format(dateLayout),
		EndDate:   to.Format(dateLayout),
	}

	var result []DayStatus
	if err := c.do(ctx, http.MethodPost, "/api/availability/days-status", s, req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FirstAvailable первый свободный слот начиная с сегодня в пределах days дней
func (c *Client) FirstAvailable(ctx context.Context, s *Session, serviceID, staffID string, days int) (*FirstSlot, error) {
	req := &firstAvailableRequest{ServiceID: serviceID, StaffID: staffID, DaysToSearch: days}

	var result FirstSlot
	if err := c.do(ctx, http.MethodPost, "/api/availability/first", s, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================
// Записи
// ============================================================

// CreateAppointment создает запись; занятое время возвращает ErrConflict
func (c *Client) CreateAppointment(ctx context.Context, s *Session, req *CreateAppointmentRequest) (*Appointment, error) {
	var result Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", s, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyAppointments записи текущего пользователя, новые первыми
func (c *Client) MyAppointments(ctx context.Context, s *Session) ([]Appointment, error) {
	var result []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/my", s, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CancelAppointment отменяет запись текущего пользователя
func (c *Client) CancelAppointment(ctx context.Context, s *Session, id string) (*Appointment, error) {
	var result Appointment
	if err := c.do(ctx, http.MethodPatch, "/api/appointments/"+url.PathEscape(id)+"/cancel", s, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ConfirmAppointment подтверждает запись (администратор)
func (c *Client) ConfirmAppointment(ctx context.Context, s *Session, id string) (*Appointment, error) {
	var result Appointment
	if err := c.do(ctx, http.MethodPatch, "/api/admin/appointments/"+url.PathEscape(id)+"/confirm", s, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAppointment удаляет запись (администратор)
func (c *Client) DeleteAppointment(ctx context.Context, s *Session, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/appointments/"+url.PathEscape(id), s, nil, nil)
}

// do выполняет запрос и разбирает ответ в out (nil - тело игнорируется)
func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s %s - request failed: %v", method, path, err)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s %s: failed to decode response: %v", ErrInvalidResponse, method, path, err)
		}
		return nil
	}

	apiErr := c.apiError(resp)
	if errors.Is(apiErr, ErrUnauthorized) {
		s.Invalidate()
	}
	c.log.Warn("%s %s - status %d: %s", method, path, resp.StatusCode, apiErr.Detail)
	return apiErr
}

func (c *Client) apiError(resp *http.Response) *APIError {
	var body errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err := json.Unmarshal(raw, &body); err != nil {
		body.Detail = strings.TrimSpace(string(raw))
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       body.Code,
		Detail:     body.Detail,
		kinds:      classify(resp.StatusCode, body.Code),
	}
}

// classify сопоставляет статус ответа с классами ошибок
func classify(status int, code string) []error {
	switch {
	case status == http.StatusUnauthorized:
		return []error{ErrUnauthorized}
	case status == http.StatusForbidden && code == "not_approved":
		return []error{ErrNotApproved, ErrForbidden}
	case status == http.StatusForbidden:
		return []error{ErrForbidden}
	case status == http.StatusNotFound:
		return []error{ErrNotFound}
	case status == http.StatusConflict:
		return []error{ErrConflict}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return []error{ErrBadRequest}
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return []error{ErrTransport}
	default:
		return []error{ErrInvalidResponse}
	}
}
