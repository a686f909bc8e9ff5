package salonapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, logger.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginAndBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "maria@example.com", req.Email)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"access_token": "tok-1",
				"user":         map[string]interface{}{"id": "u1", "is_approved": true},
			})
		case "/api/appointments/my":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": "a1", "status": "pending"}})
		default:
			http.NotFound(w, r)
		}
	})

	s, err := c.Login(context.Background(), "maria@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.Equal(t, "u1", s.User().ID)

	items, err := c.MyAppointments(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ID)
}

func TestPublicCallWithoutSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/api/availability", r.URL.Path)

		var req slotsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2025-06-10", req.Date)
		writeJSON(w, http.StatusOK, map[string]interface{}{"date": req.Date, "available_slots": []string{"09:00", "09:30"}})
	})

	slots, err := c.Slots(context.Background(), nil, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "cut", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		wantErr []error
	}{
		{"unauthorized", http.StatusUnauthorized, "unauthorized", []error{ErrUnauthorized}},
		{"forbidden", http.StatusForbidden, "forbidden", []error{ErrForbidden}},
		{"not approved", http.StatusForbidden, "not_approved", []error{ErrNotApproved, ErrForbidden}},
		{"not found", http.StatusNotFound, "not_found", []error{ErrNotFound}},
		{"conflict", http.StatusConflict, "slot_taken", []error{ErrConflict}},
		{"bad request", http.StatusBadRequest, "bad_request", []error{ErrBadRequest}},
		{"unprocessable", http.StatusUnprocessableEntity, "", []error{ErrBadRequest}},
		{"server error", http.StatusInternalServerError, "internal_error", []error{ErrTransport}},
		{"rate limited", http.StatusTooManyRequests, "rate_limited", []error{ErrTransport}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, errorResponse{Detail: "nope", Code: tt.code})
			})

			s := NewSession("tok", nil)
			_, err := c.CreateAppointment(context.Background(), s, &CreateAppointmentRequest{
				ServiceID: "cut", StaffID: "alice", DateTime: "2025-06-10T09:00:00Z",
			})
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Detail)

			assert.Equal(t, tt.status != http.StatusUnauthorized, s.Valid())
		})
	}
}

func TestAppointmentIDEscaped(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "a/1 x", "status": "cancelled"})
	})
	s := NewSession("tok", nil)

	_, err := c.CancelAppointment(context.Background(), s, "a/1 x")
	require.NoError(t, err)
	_, err = c.ConfirmAppointment(context.Background(), s, "../settings")
	require.NoError(t, err)
	require.NoError(t, c.DeleteAppointment(context.Background(), s, "a?b"))

	assert.Equal(t, []string{
		"PATCH /api/appointments/a%2F1%20x/cancel",
		"PATCH /api/admin/appointments/..%2Fsettings/confirm",
		"DELETE /api/admin/appointments/a%3Fb",
	}, paths)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, logger.NewNop())
	_, err := c.Services(context.Background(), nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestInvalidResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Settings(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFirstAvailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req firstAvailableRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 60, req.DaysToSearch)
		writeJSON(w, http.StatusOK, FirstSlot{Found: true, Date: "2025-06-11", Time: "09:30"})
	})

	got, err := c.FirstAvailable(context.Background(), nil, "cut", "alice", 60)
	require.NoError(t, err)
	assert.Equal(t, &FirstSlot{Found: true, Date: "2025-06-11", Time: "09:30"}, got)
}

func TestSession_Nil(t *testing.T) {
	var s *Session
	assert.False(t, s.Valid())
	assert.Empty(t, s.Token())
	s.Invalidate()
}
