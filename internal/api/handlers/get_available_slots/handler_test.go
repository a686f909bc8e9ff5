package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeAvailability struct {
	slots []types.TimeString
	err   error
}

func (f *fakeAvailability) Slots(ctx context.Context, date time.Time, serviceID, staffID string) ([]types.TimeString, error) {
	return f.slots, f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fake     *fakeAvailability
		wantCode int
		wantBody string
	}{
		{
			name:     "slots",
			body:     `{"date":"2025-06-10","service_id":"cut","staff_id":"alice"}`,
			fake:     &fakeAvailability{slots: []types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("10:30")}},
			wantCode: http.StatusOK,
			wantBody: `{"date":"2025-06-10","available_slots":["09:00","10:30"]}`,
		},
		{
			name:     "closed day is empty list",
			body:     `{"date":"2025-06-15","service_id":"cut","staff_id":"alice"}`,
			fake:     &fakeAvailability{slots: []types.TimeString{}},
			wantCode: http.StatusOK,
			wantBody: `{"date":"2025-06-15","available_slots":[]}`,
		},
		{
			name:     "bad date",
			body:     `{"date":"10/06/2025","service_id":"cut","staff_id":"alice"}`,
			fake:     &fakeAvailability{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown service",
			body:     `{"date":"2025-06-10","service_id":"nope","staff_id":"alice"}`,
			fake:     &fakeAvailability{err: availability.ErrServiceNotFound},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "missing staff",
			body:     `{"date":"2025-06-10","service_id":"cut"}`,
			fake:     &fakeAvailability{err: availability.ErrInvalidInput},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "internal",
			body:     `{"date":"2025-06-10","service_id":"cut","staff_id":"alice"}`,
			fake:     &fakeAvailability{err: errors.New("db down")},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.fake, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/availability", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
