package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeUseCase struct {
	err     error
	lastReq *createAppointment.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		ID:        "appt-1",
		UserID:    req.UserID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		DateTime:  req.DateTime,
		Status:    domain.StatusPending,
	}, nil
}

func (f *fakeUseCase) ExecuteManual(ctx context.Context, req *createAppointment.ManualRequest) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: "appt-2", UserName: req.ClientName, DateTime: req.DateTime, Status: domain.StatusConfirmed, IsManual: true}, nil
}

func withUser(req *http.Request, userID string) *http.Request {
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestHandle(t *testing.T) {
	validBody := `{"service_id":"cut","staff_id":"alice","date_time":"2025-06-10T09:00:00Z"}`

	tests := []struct {
		name     string
		body     string
		user     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "created", body: validBody, user: "u1", wantCode: http.StatusCreated},
		{name: "no user", body: validBody, wantCode: http.StatusUnauthorized, wantErr: handlers.CodeUnauthorized},
		{name: "bad json", body: `{`, user: "u1", wantCode: http.StatusBadRequest, wantErr: handlers.CodeBadRequest},
		{name: "unknown field", body: `{"hairdresser_id":"x"}`, user: "u1", wantCode: http.StatusBadRequest},
		{name: "bad date_time", body: `{"service_id":"cut","staff_id":"alice","date_time":"tomorrow"}`, user: "u1", wantCode: http.StatusBadRequest},
		{name: "slot taken", body: validBody, user: "u1", err: createAppointment.ErrSlotNotAvailable, wantCode: http.StatusConflict, wantErr: handlers.CodeSlotTaken},
		{name: "not approved", body: validBody, user: "u1", err: createAppointment.ErrNotApproved, wantCode: http.StatusForbidden, wantErr: handlers.CodeNotApproved},
		{name: "service missing", body: validBody, user: "u1", err: createAppointment.ErrServiceNotFound, wantCode: http.StatusNotFound},
		{name: "day closed", body: validBody, user: "u1", err: createAppointment.ErrDayClosed, wantCode: http.StatusBadRequest},
		{name: "internal", body: validBody, user: "u1", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			h := NewHandler(uc, logger.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(tt.body))
			if tt.user != "" {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantErr, body.Code)
				assert.NotEmpty(t, body.Detail)
			}
		})
	}
}

func TestHandle_PassesRequest(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	body := `{"service_id":"cut","staff_id":"alice","date_time":"2025-06-10T09:00:00Z"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "u1", uc.lastReq.UserID)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), uc.lastReq.DateTime)

	var resp handlers.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-10T09:00:00Z", resp.DateTime)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "alice", resp.StaffID)
}

func TestHandleManual(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	body := `{"client_name":"Maria","client_phone":"+391234","service_id":"cut","staff_id":"alice","date_time":"2025-06-10T09:15:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/manual", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleManual(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handlers.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsManual)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2025-06-10T09:15:00Z", resp.DateTime)
}
