package create_appointment

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointments struct {
	created []*domain.Appointment
	err     error
}

func (f *fakeAppointments) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, a)
	return a, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetService(ctx context.Context, id string) (*domain.Service, error) {
	if id != "cut" {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: "cut", Name: "Taglio", DurationMinutes: 30}, nil
}

func (fakeCatalog) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	if id != "alice" {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return &domain.Staff{ID: "alice", Name: "Alice"}, nil
}

type fakeUsers map[string]*domain.User

func (f fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeAvailability struct {
	open      bool
	free      bool
	lastStart time.Time
	lastDur   int
}

func (f *fakeAvailability) IsDayOpen(ctx context.Context, date time.Time) (bool, *domain.Settings, error) {
	return f.open, &domain.Settings{TimeSlots: []types.TimeString{
		types.MustTimeString("09:00"),
		types.MustTimeString("09:30"),
	}}, nil
}

func (f *fakeAvailability) CheckSlot(ctx context.Context, staffID string, start time.Time, durationMinutes int, excludeID *string) (bool, error) {
	f.lastStart, f.lastDur = start, durationMinutes
	return f.free, nil
}

type inlineTx struct{ calls int }

func (t *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type outcomes map[string]int

func (o outcomes) AppointmentOutcome(outcome string) { o[outcome]++ }

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointments
	availability *fakeAvailability
	outcomes     outcomes
}

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointments{},
		availability: &fakeAvailability{open: true, free: true},
		outcomes:     outcomes{},
	}
	users := fakeUsers{
		"u1": {ID: "u1", Name: "Maria", Phone: "+39333", Email: "maria@example.com", IsApproved: true},
		"u2": {ID: "u2", Name: "Luca", IsApproved: false},
	}
	f.uc = NewUseCase(f.appointments, fakeCatalog{}, users, f.availability, &inlineTx{}, f.outcomes, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)})
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	dt := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	got, err := f.uc.Execute(context.Background(), &Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, "Maria", got.UserName)
	assert.Equal(t, "Alice", got.StaffName)
	assert.Equal(t, "Taglio", got.ServiceName)
	assert.False(t, got.IsManual)
	assert.Equal(t, dt, f.availability.lastStart)
	assert.Equal(t, 30, f.availability.lastDur)
	assert.Equal(t, 1, f.outcomes[OutcomeCreated])
}

func TestExecute_Rejections(t *testing.T) {
	dt := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     Request
		prepare func(f *fixture)
		wantErr error
		outcome string
	}{
		{"missing staff", Request{UserID: "u1", ServiceID: "cut", DateTime: dt}, nil, ErrInvalidInput, OutcomeRejected},
		{"past", Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt.AddDate(0, 0, -2)}, nil, ErrPastDateTime, OutcomeRejected},
		{"unknown user", Request{UserID: "nope", ServiceID: "cut", StaffID: "alice", DateTime: dt}, nil, ErrUserNotFound, OutcomeRejected},
		{"not approved", Request{UserID: "u2", ServiceID: "cut", StaffID: "alice", DateTime: dt}, nil, ErrNotApproved, OutcomeRejected},
		{"unknown service", Request{UserID: "u1", ServiceID: "x", StaffID: "alice", DateTime: dt}, nil, ErrServiceNotFound, OutcomeRejected},
		{"unknown staff", Request{UserID: "u1", ServiceID: "cut", StaffID: "x", DateTime: dt}, nil, ErrStaffNotFound, OutcomeRejected},
		{"off grid", Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt.Add(10 * time.Minute)}, nil, ErrInvalidTimeSlot, OutcomeRejected},
		{
			"closed day",
			Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt},
			func(f *fixture) { f.availability.open = false },
			ErrDayClosed, OutcomeRejected,
		},
		{
			"busy",
			Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt},
			func(f *fixture) { f.availability.free = false },
			ErrSlotNotAvailable, OutcomeConflict,
		},
		{
			"serialization failure",
			Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt},
			func(f *fixture) { f.appointments.err = fmt.Errorf("insert: %w", &pq.Error{Code: "40001"}) },
			ErrSlotNotAvailable, OutcomeConflict,
		},
		{
			"storage failure",
			Request{UserID: "u1", ServiceID: "cut", StaffID: "alice", DateTime: dt},
			func(f *fixture) { f.appointments.err = fmt.Errorf("connection reset") },
			ErrInternal, OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.prepare != nil {
				tt.prepare(f)
			}
			req := tt.req

			_, err := f.uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments.created)
			assert.Equal(t, 1, f.outcomes[tt.outcome])
		})
	}
}

func TestExecuteManual(t *testing.T) {
	f := newFixture()
	// Вне сетки слотов: ручная запись допускается
	dt := time.Date(2025, 6, 10, 12, 15, 0, 0, time.UTC)

	got, err := f.uc.ExecuteManual(context.Background(), &ManualRequest{
		ClientName:  " Giulia ",
		ClientPhone: "+39111",
		ServiceID:   "cut",
		StaffID:     "alice",
		DateTime:    dt,
	})
	require.NoError(t, err)

	assert.True(t, got.IsManual)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, "Giulia", got.UserName)
	assert.True(t, strings.HasPrefix(got.UserID, "manual_"))
	assert.Len(t, got.UserID, len("manual_")+8)
	assert.Equal(t, got.ID[:8], strings.TrimPrefix(got.UserID, "manual_"))
}

func TestExecuteManual_Validation(t *testing.T) {
	f := newFixture()
	dt := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	_, err := f.uc.ExecuteManual(context.Background(), &ManualRequest{ClientPhone: "+39", ServiceID: "cut", StaffID: "alice", DateTime: dt})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.availability.free = false
	_, err = f.uc.ExecuteManual(context.Background(), &ManualRequest{ClientName: "G", ClientPhone: "+39", ServiceID: "cut", StaffID: "alice", DateTime: dt})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
