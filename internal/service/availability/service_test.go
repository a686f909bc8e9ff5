package availability

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointments struct {
	items      []*domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func (f *fakeAppointments) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	result := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if filter.StaffID != nil && a.StaffID != *filter.StaffID {
			continue
		}
		if filter.From != nil && a.DateTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.DateTime.Before(*filter.To) {
			continue
		}
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		if !filter.IncludeCancelled && a.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type fakeCatalog struct {
	services     map[string]*domain.Service
	durationsErr error
}

func (f *fakeCatalog) GetService(ctx context.Context, id string) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalog) ServiceDurations(ctx context.Context, ids []string) (map[string]int, error) {
	if f.durationsErr != nil {
		return nil, f.durationsErr
	}
	result := make(map[string]int)
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			result[id] = s.DurationMinutes
		}
	}
	return result, nil
}

type fakeClosures struct {
	items []*domain.Closure
	err   error
}

func (f *fakeClosures) List(ctx context.Context, from, to *time.Time) ([]*domain.Closure, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type staticSettings struct {
	s   *domain.Settings
	err error
}

func (f staticSettings) Get(ctx context.Context) (*domain.Settings, error) { return f.s, f.err }

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(appts []*domain.Appointment, closures []*domain.Closure, settings *domain.Settings) *Service {
	catalog := &fakeCatalog{services: map[string]*domain.Service{
		"cut":   {ID: "cut", Name: "Haircut", DurationMinutes: 30},
		"color": {ID: "color", Name: "Color", DurationMinutes: 60},
	}}
	if settings == nil {
		settings = &domain.Settings{
			TimeSlots: []types.TimeString{
				types.MustTimeString("09:00"),
				types.MustTimeString("09:30"),
				types.MustTimeString("10:00"),
			},
			WorkingDays: []int{1, 2, 3, 4, 5, 6},
		}
	}

	return NewService(
		&fakeAppointments{items: appts},
		catalog,
		&fakeClosures{items: closures},
		staticSettings{s: settings},
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: at("2025-06-09T08:00:00Z")}) // понедельник
}

func TestSlots(t *testing.T) {
	appts := []*domain.Appointment{
		{ID: "a1", StaffID: "alice", ServiceID: "cut", DateTime: at("2025-06-10T09:30:00Z"), Status: domain.StatusPending},
		{ID: "a2", StaffID: "bob", ServiceID: "cut", DateTime: at("2025-06-10T09:00:00Z"), Status: domain.StatusPending},
		{ID: "a3", StaffID: "alice", ServiceID: "cut", DateTime: at("2025-06-10T10:00:00Z"), Status: domain.StatusCancelled},
	}
	svc := newTestService(appts, nil, nil)

	t.Run("short service", func(t *testing.T) {
		got, err := svc.Slots(context.Background(), at("2025-06-10T00:00:00Z"), "cut", "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00"}, types.FormatTimeStrings(got))
	})

	t.Run("long service does not fit before booking", func(t *testing.T) {
		got, err := svc.Slots(context.Background(), at("2025-06-10T00:00:00Z"), "color", "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00"}, types.FormatTimeStrings(got))
	})

	t.Run("closed day is empty", func(t *testing.T) {
		got, err := svc.Slots(context.Background(), at("2025-06-15T00:00:00Z"), "cut", "alice")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.Slots(context.Background(), at("2025-06-10T00:00:00Z"), "nope", "alice")
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("missing staff", func(t *testing.T) {
		_, err := svc.Slots(context.Background(), at("2025-06-10T00:00:00Z"), "cut", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDaysStatus(t *testing.T) {
	appts := []*domain.Appointment{
		{ID: "a1", StaffID: "alice", ServiceID: "color", DateTime: at("2025-06-11T09:00:00Z"), Status: domain.StatusConfirmed},
		{ID: "a2", StaffID: "alice", ServiceID: "cut", DateTime: at("2025-06-11T10:00:00Z"), Status: domain.StatusPending},
	}
	closures := []*domain.Closure{{ID: "c1", Date: at("2025-06-12T00:00:00Z"), Reason: "Holiday"}}
	svc := newTestService(appts, closures, nil)

	got, err := svc.DaysStatus(context.Background(), "cut", "alice", at("2025-06-08T00:00:00Z"), at("2025-06-12T00:00:00Z"))
	require.NoError(t, err)

	statuses := make(map[string]domain.DayStatus)
	for _, e := range got {
		statuses[types.FormatDate(e.Date)] = e.Status
	}

	assert.Equal(t, map[string]domain.DayStatus{
		"2025-06-08": domain.DayClosed,    // прошлое
		"2025-06-09": domain.DayAvailable, // сегодня, слоты ещё впереди
		"2025-06-10": domain.DayAvailable,
		"2025-06-11": domain.DayFull,
		"2025-06-12": domain.DayClosed, // закрытие
	}, statuses)
	assert.Len(t, got, 5)
}

func TestDaysStatus_Range(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.DaysStatus(context.Background(), "cut", "alice", at("2025-06-10T00:00:00Z"), at("2025-06-09T00:00:00Z"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.DaysStatus(context.Background(), "cut", "alice", at("2025-01-01T00:00:00Z"), at("2026-01-02T00:00:00Z"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFirstAvailable(t *testing.T) {
	t.Run("skips full and closed days", func(t *testing.T) {
		appts := []*domain.Appointment{
			{ID: "a1", StaffID: "alice", ServiceID: "color", DateTime: at("2025-06-09T09:00:00Z"), Status: domain.StatusPending},
			{ID: "a2", StaffID: "alice", ServiceID: "cut", DateTime: at("2025-06-09T10:00:00Z"), Status: domain.StatusPending},
		}
		closures := []*domain.Closure{{ID: "c1", Date: at("2025-06-10T00:00:00Z")}}
		svc := newTestService(appts, closures, nil)

		got, err := svc.FirstAvailable(context.Background(), "cut", "alice", 60)
		require.NoError(t, err)
		require.True(t, got.Found)
		assert.Equal(t, "2025-06-11", types.FormatDate(got.Date))
		assert.Equal(t, "09:00", got.Time.String())
	})

	t.Run("not found", func(t *testing.T) {
		settings := &domain.Settings{TimeSlots: []types.TimeString{types.MustTimeString("09:00")}, WorkingDays: []int{}}
		svc := newTestService(nil, nil, settings)

		got, err := svc.FirstAvailable(context.Background(), "cut", "alice", 60)
		require.NoError(t, err)
		assert.False(t, got.Found)
	})

	t.Run("days out of range", func(t *testing.T) {
		svc := newTestService(nil, nil, nil)
		_, err := svc.FirstAvailable(context.Background(), "cut", "alice", 0)
		assert.ErrorIs(t, err, ErrInvalidRange)
		_, err = svc.FirstAvailable(context.Background(), "cut", "alice", 366)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestCheckSlot_ExcludesRescheduled(t *testing.T) {
	appts := []*domain.Appointment{
		{ID: "a1", StaffID: "alice", ServiceID: "cut", DateTime: at("2025-06-10T09:00:00Z"), Status: domain.StatusPending},
	}
	svc := newTestService(appts, nil, nil)

	free, err := svc.CheckSlot(context.Background(), "alice", at("2025-06-10T09:00:00Z"), 30, nil)
	require.NoError(t, err)
	assert.False(t, free)

	excluded := "a1"
	free, err = svc.CheckSlot(context.Background(), "alice", at("2025-06-10T09:15:00Z"), 30, &excluded)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = svc.CheckSlot(context.Background(), "alice", at("2025-06-10T09:30:00Z"), 30, nil)
	require.NoError(t, err)
	assert.True(t, free, "touching intervals do not overlap")
}

func TestIsDayOpen(t *testing.T) {
	closures := []*domain.Closure{{ID: "c1", Date: at("2025-06-10T00:00:00Z")}}
	svc := newTestService(nil, closures, nil)

	open, settings, err := svc.IsDayOpen(context.Background(), at("2025-06-10T09:00:00Z"))
	require.NoError(t, err)
	assert.False(t, open)
	assert.NotNil(t, settings)
}

func TestRepositoryErrors_KeepCause(t *testing.T) {
	serialization := &pq.Error{Code: "40001", Message: "could not serialize access"}
	appts := []*domain.Appointment{
		{ID: "a1", StaffID: "alice", ServiceID: "cut", DateTime: at("2025-06-10T09:30:00Z"), Status: domain.StatusPending},
	}

	tests := []struct {
		name string
		call func(svc *Service) error
		prep func(svc *Service)
	}{
		{
			name: "settings in IsDayOpen",
			prep: func(svc *Service) { svc.settings = staticSettings{err: serialization} },
			call: func(svc *Service) error {
				_, _, err := svc.IsDayOpen(context.Background(), at("2025-06-10T09:00:00Z"))
				return err
			},
		},
		{
			name: "settings in Slots",
			prep: func(svc *Service) { svc.settings = staticSettings{err: serialization} },
			call: func(svc *Service) error {
				_, err := svc.Slots(context.Background(), at("2025-06-10T00:00:00Z"), "cut", "alice")
				return err
			},
		},
		{
			name: "closures",
			prep: func(svc *Service) { svc.closureRepo = &fakeClosures{err: serialization} },
			call: func(svc *Service) error {
				_, _, err := svc.IsDayOpen(context.Background(), at("2025-06-10T09:00:00Z"))
				return err
			},
		},
		{
			name: "service durations",
			prep: func(svc *Service) {
				svc.catalogRepo.(*fakeCatalog).durationsErr = serialization
			},
			call: func(svc *Service) error {
				_, err := svc.CheckSlot(context.Background(), "alice", at("2025-06-10T09:00:00Z"), 30, nil)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(appts, nil, nil)
			tt.prep(svc)

			err := tt.call(svc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInternal)
			assert.True(t, txmanager.IsSerializationFailure(err))
		})
	}
}
