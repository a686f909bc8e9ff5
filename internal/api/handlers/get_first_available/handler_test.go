package get_first_available

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeAvailability struct {
	slot     *domain.FirstSlot
	err      error
	lastDays int
}

func (f *fakeAvailability) FirstAvailable(ctx context.Context, serviceID, staffID string, days int) (*domain.FirstSlot, error) {
	f.lastDays = days
	return f.slot, f.err
}

func TestHandle_Found(t *testing.T) {
	fake := &fakeAvailability{slot: &domain.FirstSlot{
		Found: true,
		Date:  time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Time:  types.MustTimeString("09:30"),
	}}
	h := NewHandler(fake, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/availability/first",
		strings.NewReader(`{"service_id":"cut","staff_id":"alice","days_to_search":30}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":true,"date":"2025-06-11","time":"09:30"}`, rec.Body.String())
	assert.Equal(t, 30, fake.lastDays)
}

func TestHandle_NotFound(t *testing.T) {
	fake := &fakeAvailability{slot: &domain.FirstSlot{}}
	h := NewHandler(fake, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/availability/first",
		strings.NewReader(`{"service_id":"cut","staff_id":"alice"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":false}`, rec.Body.String())
	assert.Equal(t, defaultDaysToSearch, fake.lastDays)
}

func TestHandle_InvalidRange(t *testing.T) {
	h := NewHandler(&fakeAvailability{err: availability.ErrInvalidRange}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/availability/first",
		strings.NewReader(`{"service_id":"cut","staff_id":"alice","days_to_search":0}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
