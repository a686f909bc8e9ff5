package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	closureRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/closure"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service справочник салона: услуги, мастера и дни закрытия
type Service struct {
	catalogRepo CatalogRepository
	closureRepo ClosureRepository
	logger      Logger
}

// NewService создает сервис справочника
func NewService(catalogRepo CatalogRepository, closureRepo ClosureRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		closureRepo: closureRepo,
		logger:      logger,
	}
}

// ============================================================
// Услуги
// ============================================================

func (s *Service) ListServices(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return services, nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, in *ServiceInput) (*domain.Service, error) {
	s.logger.Info("CreateService: name=%q, duration=%d", in.Name, in.DurationMinutes)

	service := &domain.Service{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
	}
	if err := validateService(service); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%s", created.ID)
	return created, nil
}

// UpdateService частично обновляет услугу
func (s *Service) UpdateService(ctx context.Context, id string, patch *ServicePatch) (*domain.Service, error) {
	s.logger.Info("UpdateService: id=%s", id)

	service, err := s.catalogRepo.GetService(ctx, id)
	if err != nil {
		return nil, s.mapServiceErr("UpdateService", id, err)
	}

	if patch.Name != nil {
		service.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		service.Description = *patch.Description
	}
	if patch.Price != nil {
		service.Price = *patch.Price
	}
	if patch.DurationMinutes != nil {
		service.DurationMinutes = *patch.DurationMinutes
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	if err := s.catalogRepo.UpdateService(ctx, service); err != nil {
		return nil, s.mapServiceErr("UpdateService", id, err)
	}

	return service, nil
}

// DeleteService удаляет услугу
func (s *Service) DeleteService(ctx context.Context, id string) error {
	s.logger.Info("DeleteService: id=%s", id)

	if err := s.catalogRepo.DeleteService(ctx, id); err != nil {
		return s.mapServiceErr("DeleteService", id, err)
	}
	return nil
}

func (s *Service) mapServiceErr(op, id string, err error) error {
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service id=%s not found", op, id)
		return ErrServiceNotFound
	}
	s.logger.Error("%s: repository error for service id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateService(s *domain.Service) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if s.DurationMinutes < domain.MinServiceDuration || s.DurationMinutes > domain.MaxServiceDuration {
		return fmt.Errorf("%w: duration_minutes must be within %d..%d",
			ErrInvalidInput, domain.MinServiceDuration, domain.MaxServiceDuration)
	}
	return nil
}

// ============================================================
// Мастера
// ============================================================

func (s *Service) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	staff, err := s.catalogRepo.ListStaff(ctx)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}
	return staff, nil
}

// CreateStaff создает мастера
func (s *Service) CreateStaff(ctx context.Context, name string, specialties []string) (*domain.Staff, error) {
	s.logger.Info("CreateStaff: name=%q", name)

	staff := &domain.Staff{Name: strings.TrimSpace(name), Specialties: cleanSpecialties(specialties)}
	if staff.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.catalogRepo.CreateStaff(ctx, staff)
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: created staff id=%s", created.ID)
	return created, nil
}

// UpdateStaff частично обновляет мастера
func (s *Service) UpdateStaff(ctx context.Context, id string, patch *StaffPatch) (*domain.Staff, error) {
	s.logger.Info("UpdateStaff: id=%s", id)

	staff, err := s.catalogRepo.GetStaff(ctx, id)
	if err != nil {
		return nil, s.mapStaffErr("UpdateStaff", id, err)
	}

	if patch.Name != nil {
		staff.Name = strings.TrimSpace(*patch.Name)
		if staff.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
	}
	if patch.Specialties != nil {
		staff.Specialties = cleanSpecialties(patch.Specialties)
	}

	if err := s.catalogRepo.UpdateStaff(ctx, staff); err != nil {
		return nil, s.mapStaffErr("UpdateStaff", id, err)
	}

	return staff, nil
}

// DeleteStaff удаляет мастера
func (s *Service) DeleteStaff(ctx context.Context, id string) error {
	s.logger.Info("DeleteStaff: id=%s", id)

	if err := s.catalogRepo.DeleteStaff(ctx, id); err != nil {
		return s.mapStaffErr("DeleteStaff", id, err)
	}
	return nil
}

func (s *Service) mapStaffErr(op, id string, err error) error {
	if errors.Is(err, catalogRepo.ErrStaffNotFound) {
		s.logger.Warn("%s: staff id=%s not found", op, id)
		return ErrStaffNotFound
	}
	s.logger.Error("%s: repository error for staff id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func cleanSpecialties(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// ============================================================
// Закрытия
// ============================================================

// ListClosures возвращает закрытия начиная с from (nil - все)
func (s *Service) ListClosures(ctx context.Context, from *time.Time) ([]*domain.Closure, error) {
	closures, err := s.closureRepo.List(ctx, from, nil)
	if err != nil {
		s.logger.Error("ListClosures: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClosures - repository error: %v", ErrInternal, err)
	}
	return closures, nil
}

// CreateClosure закрывает салон на дату
func (s *Service) CreateClosure(ctx context.Context, in *ClosureInput) (*domain.Closure, error) {
	s.logger.Info("CreateClosure: date=%s", types.FormatDate(in.Date))

	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	reason := strings.TrimSpace(in.Reason)
	if len([]rune(reason)) > domain.MaxClosureReasonLen {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxClosureReasonLen)
	}

	created, err := s.closureRepo.Create(ctx, &domain.Closure{Date: types.DateOnly(in.Date), Reason: reason})
	if err != nil {
		if errors.Is(err, closureRepo.ErrClosureExists) {
			s.logger.Warn("CreateClosure: closure for %s already exists", types.FormatDate(in.Date))
			return nil, ErrClosureExists
		}
		s.logger.Error("CreateClosure: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateClosure - repository error: %v", ErrInternal, err)
	}

	return created, nil
}

// DeleteClosure снимает закрытие
func (s *Service) DeleteClosure(ctx context.Context, id string) error {
	s.logger.Info("DeleteClosure: id=%s", id)

	if err := s.closureRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, closureRepo.ErrClosureNotFound) {
			return ErrClosureNotFound
		}
		s.logger.Error("DeleteClosure: repository error: %v", err)
		return fmt.Errorf("%w: DeleteClosure - repository error: %v", ErrInternal, err)
	}
	return nil
}
