package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service чтение записей и простые переходы статуса
// Создание и перенос записей живут в usecase, так как требуют проверки доступности
type Service struct {
	repo      AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис записей
func NewService(repo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{repo: repo, txManager: txManager, logger: logger}
}

// ListMine записи клиента, новые сверху
func (s *Service) ListMine(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	s.logger.Info("ListMine: user=%s", userID)

	var items []*domain.Appointment
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		items, err = s.repo.List(txCtx, domain.AppointmentsFilter{
			UserID:           ptr.Ptr(userID),
			IncludeCancelled: true,
			OrderDesc:        true,
		})
		return err
	})
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	return items, nil
}

// Cancel отменяет запись клиента
func (s *Service) Cancel(ctx context.Context, id, userID string) (*domain.Appointment, error) {
	s.logger.Info("Cancel: appointment=%s, user=%s", id, userID)

	var result *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.get(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !appointment.BelongsTo(userID) {
			s.logger.Warn("Cancel: user=%s is not the owner of appointment=%s", userID, id)
			return ErrAccessDenied
		}
		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment=%s has status %s", id, appointment.Status)
			return fmt.Errorf("%w: appointment is already %s", ErrInvalidStatus, appointment.Status)
		}

		result, err = s.setStatus(txCtx, "Cancel", appointment, domain.StatusCancelled)
		return err
	})
	if err != nil {
		return nil, s.txErr("Cancel", err)
	}

	return result, nil
}

// ListAll записи для администратора: за день (UTC) и/или по статусу, по возрастанию времени
func (s *Service) ListAll(ctx context.Context, date *time.Time, status *string) ([]*domain.Appointment, error) {
	filter := domain.AppointmentsFilter{IncludeCancelled: true}

	if date != nil {
		from := types.DateOnly(*date)
		to := from.AddDate(0, 0, 1)
		filter.From, filter.To = &from, &to
	}
	if status != nil {
		st := domain.AppointmentStatus(*status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
		}
		filter.Status = ptr.Ptr(st)
	}

	var items []*domain.Appointment
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		items, err = s.repo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: %d appointments", len(items))
	return items, nil
}

// Confirm подтверждает ожидающую запись
func (s *Service) Confirm(ctx context.Context, id string) (*domain.Appointment, error) {
	s.logger.Info("Confirm: appointment=%s", id)

	var result *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.get(txCtx, "Confirm", id)
		if err != nil {
			return err
		}
		if appointment.Status == domain.StatusConfirmed {
			result = appointment
			return nil
		}
		if !appointment.CanBeConfirmed() {
			s.logger.Warn("Confirm: appointment=%s has status %s", id, appointment.Status)
			return fmt.Errorf("%w: appointment is %s", ErrInvalidStatus, appointment.Status)
		}

		result, err = s.setStatus(txCtx, "Confirm", appointment, domain.StatusConfirmed)
		return err
	})
	if err != nil {
		return nil, s.txErr("Confirm", err)
	}

	return result, nil
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: appointment=%s", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapErr("Delete", id, err)
	}
	return nil
}

// DeleteCancelled удаляет все отменённые записи и возвращает их количество
func (s *Service) DeleteCancelled(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteByStatus(ctx, domain.StatusCancelled)
	if err != nil {
		s.logger.Error("DeleteCancelled: repository error: %v", err)
		return 0, fmt.Errorf("%w: DeleteCancelled - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteCancelled: deleted %d cancelled appointments", deleted)
	return deleted, nil
}

func (s *Service) get(ctx context.Context, op, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(op, id, err)
	}
	return appointment, nil
}

func (s *Service) setStatus(ctx context.Context, op string, a *domain.Appointment, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if err := s.repo.UpdateStatus(ctx, a.ID, status); err != nil {
		return nil, s.mapErr(op, a.ID, err)
	}
	a.Status = status
	s.logger.Info("%s: appointment=%s is now %s", op, a.ID, status)
	return a, nil
}

// txErr пропускает ошибки сервиса как есть, остальное (begin/commit) считает внутренней ошибкой
func (s *Service) txErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInternal):
		return err
	default:
		s.logger.Error("%s: transaction error: %v", op, err)
		return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
	}
}

func (s *Service) mapErr(op, id string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment=%s not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
