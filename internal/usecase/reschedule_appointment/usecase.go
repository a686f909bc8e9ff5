package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для переноса и изменения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	availability    AvailabilityChecker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		availability:    availability,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит запись клиента на другое время
// Новое время должно быть в будущем, попадать в сетку и быть свободным без учёта самой записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%s, user=%s, date_time=%s",
		req.AppointmentID, req.UserID, req.DateTime.UTC().Format("2006-01-02T15:04"))

	// 1. Валидация входных данных
	if req.AppointmentID == "" || req.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: appointment id and date_time are required", ErrInvalidInput)
	}
	dateTime := req.DateTime.UTC()

	// 2. Новое время в будущем
	if !dateTime.After(uc.timeProvider.Now()) {
		uc.logger.Warn("RescheduleAppointment: date_time %s is not in the future", dateTime)
		return nil, ErrPastDateTime
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Запись существует, принадлежит клиенту и активна
		appointment, err := uc.get(txCtx, "RescheduleAppointment", req.AppointmentID)
		if err != nil {
			return err
		}
		if !appointment.BelongsTo(req.UserID) {
			uc.logger.Warn("RescheduleAppointment: user=%s is not the owner of appointment=%s", req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}
		if !appointment.IsActive() {
			uc.logger.Warn("RescheduleAppointment: appointment=%s is cancelled", req.AppointmentID)
			return fmt.Errorf("%w: cancelled appointment cannot be rescheduled", ErrInvalidStatus)
		}

		// 4. Проверка нового времени
		if err := uc.checkTarget(txCtx, "RescheduleAppointment", appointment, dateTime, true); err != nil {
			return err
		}

		// 5. Сохранение
		if err := uc.appointmentRepo.UpdateDateTime(txCtx, appointment.ID, dateTime); err != nil {
			return uc.mapErr("RescheduleAppointment", appointment.ID, err)
		}

		appointment.DateTime = dateTime
		result = appointment
		return nil
	})
	if err != nil {
		return nil, uc.mapTxErr("RescheduleAppointment", err)
	}

	uc.logger.Info("RescheduleAppointment: appointment=%s moved to %s", result.ID, dateTime)
	return result, nil
}

// ExecuteAdmin меняет время и/или статус записи от имени администратора
// Новое время проверяется на доступность, сетка слотов не обязательна
func (uc *UseCase) ExecuteAdmin(ctx context.Context, req *AdminRequest) (*domain.Appointment, error) {
	uc.logger.Info("UpdateAppointment: appointment=%s", req.AppointmentID)

	// 1. Валидация входных данных
	var status *domain.AppointmentStatus
	if req.Status != nil {
		st := domain.AppointmentStatus(*req.Status)
		if !st.IsValid() {
			uc.logger.Warn("UpdateAppointment: unknown status %q", *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, *req.Status)
		}
		status = &st
	}

	var dateTime *time.Time
	if req.DateTime != nil {
		dt := req.DateTime.UTC()
		if !dt.After(uc.timeProvider.Now()) {
			uc.logger.Warn("UpdateAppointment: date_time %s is not in the future", dt)
			return nil, ErrPastDateTime
		}
		dateTime = &dt
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.get(txCtx, "UpdateAppointment", req.AppointmentID)
		if err != nil {
			return err
		}

		// 2. Перенос
		if dateTime != nil && !dateTime.Equal(appointment.DateTime) {
			if err := uc.checkTarget(txCtx, "UpdateAppointment", appointment, *dateTime, false); err != nil {
				return err
			}
			if err := uc.appointmentRepo.UpdateDateTime(txCtx, appointment.ID, *dateTime); err != nil {
				return uc.mapErr("UpdateAppointment", appointment.ID, err)
			}
			appointment.DateTime = *dateTime
		}

		// 3. Смена статуса
		if status != nil && *status != appointment.Status {
			if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, *status); err != nil {
				return uc.mapErr("UpdateAppointment", appointment.ID, err)
			}
			appointment.Status = *status
		}

		result = appointment
		return nil
	})
	if err != nil {
		return nil, uc.mapTxErr("UpdateAppointment", err)
	}

	uc.logger.Info("UpdateAppointment: appointment=%s updated, status=%s, date_time=%s",
		result.ID, result.Status, result.DateTime)
	return result, nil
}

// checkTarget проверяет день, сетку и занятость мастера для нового времени
func (uc *UseCase) checkTarget(ctx context.Context, op string, a *domain.Appointment, dateTime time.Time, requireSlot bool) error {
	open, settings, err := uc.availability.IsDayOpen(ctx, dateTime)
	if err != nil {
		uc.logger.Error("%s: failed to check day: %v", op, err)
		return fmt.Errorf("%w: failed to check day: %w", ErrInternal, err)
	}
	if !open {
		uc.logger.Warn("%s: salon is closed on %s", op, types.FormatDate(dateTime))
		return ErrDayClosed
	}

	if requireSlot && (dateTime.Second() != 0 || dateTime.Nanosecond() != 0 ||
		!settings.HasTimeSlot(types.NewTimeString(dateTime))) {
		uc.logger.Warn("%s: %s is not a configured slot", op, dateTime.Format("15:04:05"))
		return ErrInvalidTimeSlot
	}

	duration, err := uc.duration(ctx, a.ServiceID)
	if err != nil {
		return err
	}

	free, err := uc.availability.CheckSlot(ctx, a.StaffID, dateTime, duration, &a.ID)
	if err != nil {
		uc.logger.Error("%s: failed to check slot: %v", op, err)
		return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
	}
	if !free {
		uc.logger.Warn("%s: staff=%s is busy at %s", op, a.StaffID, dateTime)
		return ErrSlotNotAvailable
	}

	return nil
}

// duration длительность услуги записи; удалённая услуга считается стандартной
func (uc *UseCase) duration(ctx context.Context, serviceID string) (int, error) {
	service, err := uc.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return domain.DefaultServiceDurationMinutes, nil
		}
		uc.logger.Error("duration: failed to get service id=%s: %v", serviceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service.DurationMinutes, nil
}

func (uc *UseCase) get(ctx context.Context, op, id string) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapErr(op, id, err)
	}
	return appointment, nil
}

func (uc *UseCase) mapErr(op, id string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Warn("%s: appointment=%s not found", op, id)
		return ErrAppointmentNotFound
	}
	uc.logger.Error("%s: repository error for appointment=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

func (uc *UseCase) mapTxErr(op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("%s: serialization conflict", op)
		return ErrSlotNotAvailable
	}
	if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
		uc.logger.Error("%s: transaction error: %v", op, err)
		return fmt.Errorf("%w: transaction: %w", ErrInternal, err)
	}
	return err
}
