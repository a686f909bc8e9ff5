package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	closureRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/closure"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeCatalog struct {
	services map[string]*domain.Service
	staff    map[string]*domain.Staff
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[string]*domain.Service{}, staff: map[string]*domain.Staff{}}
}

func (f *fakeCatalog) ListServices(ctx context.Context) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(f.services))
	for _, s := range f.services {
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeCatalog) GetService(ctx context.Context, id string) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCatalog) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = "svc-" + s.Name
	f.services[s.ID] = s
	return s, nil
}

func (f *fakeCatalog) UpdateService(ctx context.Context, s *domain.Service) error {
	if _, ok := f.services[s.ID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	f.services[s.ID] = s
	return nil
}

func (f *fakeCatalog) DeleteService(ctx context.Context, id string) error {
	if _, ok := f.services[id]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	delete(f.services, id)
	return nil
}

func (f *fakeCatalog) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	result := make([]*domain.Staff, 0, len(f.staff))
	for _, s := range f.staff {
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeCatalog) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, catalogRepo.ErrStaffNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCatalog) CreateStaff(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	s.ID = "staff-" + s.Name
	f.staff[s.ID] = s
	return s, nil
}

func (f *fakeCatalog) UpdateStaff(ctx context.Context, s *domain.Staff) error {
	f.staff[s.ID] = s
	return nil
}

func (f *fakeCatalog) DeleteStaff(ctx context.Context, id string) error {
	if _, ok := f.staff[id]; !ok {
		return catalogRepo.ErrStaffNotFound
	}
	delete(f.staff, id)
	return nil
}

type fakeClosures struct {
	byDate map[string]*domain.Closure
}

func (f *fakeClosures) List(ctx context.Context, from, to *time.Time) ([]*domain.Closure, error) {
	result := make([]*domain.Closure, 0)
	for _, c := range f.byDate {
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeClosures) Create(ctx context.Context, c *domain.Closure) (*domain.Closure, error) {
	key := types.FormatDate(c.Date)
	if _, ok := f.byDate[key]; ok {
		return nil, closureRepo.ErrClosureExists
	}
	c.ID = "closure-" + key
	f.byDate[key] = c
	return c, nil
}

func (f *fakeClosures) Delete(ctx context.Context, id string) error {
	for k, c := range f.byDate {
		if c.ID == id {
			delete(f.byDate, k)
			return nil
		}
	}
	return closureRepo.ErrClosureNotFound
}

func newTestService() (*Service, *fakeCatalog) {
	catalog := newFakeCatalog()
	return NewService(catalog, &fakeClosures{byDate: map[string]*domain.Closure{}}, logger.NewNop()), catalog
}

func TestServices_CRUD(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &ServiceInput{Name: " Haircut ", Price: 25, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, "Haircut", created.Name)

	updated, err := svc.UpdateService(ctx, created.ID, &ServicePatch{DurationMinutes: ptr.Ptr(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.DurationMinutes)
	assert.Equal(t, 25.0, updated.Price)

	require.NoError(t, svc.DeleteService(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteService(ctx, created.ID), ErrServiceNotFound)
}

func TestServices_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   ServiceInput
	}{
		{"empty name", ServiceInput{Name: " ", DurationMinutes: 30}},
		{"negative price", ServiceInput{Name: "Cut", Price: -1, DurationMinutes: 30}},
		{"too short", ServiceInput{Name: "Cut", DurationMinutes: 1}},
		{"too long", ServiceInput{Name: "Cut", DurationMinutes: 600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateService(ctx, &tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.UpdateService(ctx, "missing", &ServicePatch{})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestStaff_CRUD(t *testing.T) {
	svc, catalog := newTestService()
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, "Alice", []string{"cut", " ", "color "})
	require.NoError(t, err)
	assert.Equal(t, []string{"cut", "color"}, created.Specialties)

	updated, err := svc.UpdateStaff(ctx, created.ID, &StaffPatch{Name: ptr.Ptr("Alice B.")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, []string{"cut", "color"}, catalog.staff[created.ID].Specialties)

	_, err = svc.UpdateStaff(ctx, created.ID, &StaffPatch{Name: ptr.Ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateStaff(ctx, "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.DeleteStaff(ctx, "missing"), ErrStaffNotFound)
}

func TestClosures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := time.Date(2025, 12, 25, 15, 0, 0, 0, time.UTC)

	created, err := svc.CreateClosure(ctx, &ClosureInput{Date: date, Reason: "Natale"})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-25", types.FormatDate(created.Date))
	assert.Equal(t, 0, created.Date.Hour())

	_, err = svc.CreateClosure(ctx, &ClosureInput{Date: date})
	assert.ErrorIs(t, err, ErrClosureExists)

	_, err = svc.CreateClosure(ctx, &ClosureInput{Date: date.AddDate(0, 0, 1), Reason: strings.Repeat("x", 201)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ListClosures(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteClosure(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteClosure(ctx, created.ID), ErrClosureNotFound)
}
