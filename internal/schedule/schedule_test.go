package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func slots(values ...string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.MustTimeString(v)
	}
	return result
}

func TestOccupied(t *testing.T) {
	appts := []*domain.Appointment{
		{ServiceID: "cut", DateTime: at("2025-06-10T09:00:00Z"), Status: domain.StatusPending},
		{ServiceID: "color", DateTime: at("2025-06-10T10:00:00Z"), Status: domain.StatusConfirmed},
		{ServiceID: "cut", DateTime: at("2025-06-10T11:00:00Z"), Status: domain.StatusCancelled},
		{ServiceID: "deleted", DateTime: at("2025-06-10T14:00:00Z"), Status: domain.StatusPending},
	}

	got := Occupied(appts, map[string]int{"cut": 30, "color": 90})

	require.Len(t, got, 3)
	assert.Equal(t, at("2025-06-10T09:30:00Z"), got[0].End)
	assert.Equal(t, at("2025-06-10T11:30:00Z"), got[1].End)
	// удалённая услуга считается как 30 минут
	assert.Equal(t, at("2025-06-10T14:30:00Z"), got[2].End)
}

func TestIsFree_TouchingIntervalsDoNotOverlap(t *testing.T) {
	occupied := []domain.Interval{{Start: at("2025-06-10T11:00:00Z"), End: at("2025-06-10T11:30:00Z")}}

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{"ends exactly at occupied start", "2025-06-10T10:30:00Z", 30, true},
		{"starts exactly at occupied end", "2025-06-10T11:30:00Z", 30, true},
		{"overlaps the tail", "2025-06-10T11:20:00Z", 30, false},
		{"covers the range", "2025-06-10T10:30:00Z", 90, false},
		{"same start", "2025-06-10T11:00:00Z", 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFree(at(tt.start), tt.duration, occupied))
		})
	}
}

func TestFreeSlots(t *testing.T) {
	settings := &domain.Settings{
		TimeSlots:   slots("09:00", "09:30", "10:00", "10:30"),
		WorkingDays: []int{1, 2, 3, 4, 5, 6},
	}
	date := at("2025-06-10T00:00:00Z")
	occupied := []domain.Interval{{Start: at("2025-06-10T09:30:00Z"), End: at("2025-06-10T10:00:00Z")}}

	t.Run("future day", func(t *testing.T) {
		got := FreeSlots(settings, date, at("2025-06-01T12:00:00Z"), 30, occupied)
		assert.Equal(t, []string{"09:00", "10:00", "10:30"}, types.FormatTimeStrings(got))
	})

	t.Run("long service blocks earlier slot", func(t *testing.T) {
		got := FreeSlots(settings, date, at("2025-06-01T12:00:00Z"), 60, occupied)
		assert.Equal(t, []string{"10:00", "10:30"}, types.FormatTimeStrings(got))
	})

	t.Run("today skips started slots", func(t *testing.T) {
		got := FreeSlots(settings, date, at("2025-06-10T10:00:00Z"), 30, nil)
		assert.Equal(t, []string{"10:30"}, types.FormatTimeStrings(got))
	})
}

func TestIsDayOpenAndStatus(t *testing.T) {
	settings := domain.DefaultSettings()
	now := at("2025-06-10T08:00:00Z") // вторник

	assert.True(t, IsDayOpen(settings, at("2025-06-10T00:00:00Z"), now, false))
	assert.False(t, IsDayOpen(settings, at("2025-06-09T00:00:00Z"), now, false), "past day")
	assert.False(t, IsDayOpen(settings, at("2025-06-15T00:00:00Z"), now, false), "sunday")
	assert.False(t, IsDayOpen(settings, at("2025-06-11T00:00:00Z"), now, true), "closure")

	assert.Equal(t, domain.DayClosed, Status(false, slots("09:00")))
	assert.Equal(t, domain.DayFull, Status(true, nil))
	assert.Equal(t, domain.DayAvailable, Status(true, slots("09:00")))
}

func TestDaysAndGroupByDay(t *testing.T) {
	days := Days(at("2025-06-29T15:00:00Z"), at("2025-07-02T01:00:00Z"))
	require.Len(t, days, 4)
	assert.Equal(t, "2025-07-02", types.FormatDate(days[3]))
	assert.Nil(t, Days(at("2025-07-02T00:00:00Z"), at("2025-07-01T00:00:00Z")))

	grouped := GroupByDay([]*domain.Appointment{
		{ID: "a", DateTime: at("2025-06-10T09:00:00Z")},
		{ID: "b", DateTime: at("2025-06-10T15:00:00Z")},
		{ID: "c", DateTime: at("2025-06-11T09:00:00Z")},
	})
	assert.Len(t, grouped["2025-06-10"], 2)
	assert.Len(t, grouped["2025-06-11"], 1)
}
