package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const manualUserPrefix = "manual_"

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	userRepo        UserRepository
	availability    AvailabilityChecker
	txManager       TransactionManager
	metrics         OutcomeRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	userRepo UserRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	metrics OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		userRepo:        userRepo,
		availability:    availability,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает запись клиента
// Проверка свободного интервала и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: user=%s, service=%s, staff=%s, date_time=%s",
		req.UserID, req.ServiceID, req.StaffID, req.DateTime.UTC().Format("2006-01-02T15:04"))

	appointment, err := uc.execute(ctx, req)
	uc.record(err)
	return appointment, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}
	dateTime := req.DateTime.UTC()

	// 2. Запись возможна только в будущее
	if err := validateFuture(dateTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: date_time %s is not in the future", dateTime)
		return nil, err
	}

	// 3. Клиент должен существовать и быть подтверждён
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: user=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.CanBook() {
		uc.logger.Warn("CreateAppointment: user=%s is not approved", req.UserID)
		return nil, ErrNotApproved
	}

	// 4. Услуга и мастер
	service, staff, err := uc.loadTarget(ctx, "CreateAppointment", req.ServiceID, req.StaffID)
	if err != nil {
		return nil, err
	}

	appointment := &domain.Appointment{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		UserName:    user.Name,
		UserPhone:   user.Phone,
		UserEmail:   user.Email,
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		DateTime:    dateTime,
		Status:      domain.StatusPending,
	}

	// 5. Проверка и сохранение в транзакции
	return uc.book(ctx, "CreateAppointment", appointment, service.DurationMinutes, true)
}

// ExecuteManual создает запись от имени администратора
// Запись сразу подтверждена и не обязана попадать в сетку слотов
func (uc *UseCase) ExecuteManual(ctx context.Context, req *ManualRequest) (*domain.Appointment, error) {
	uc.logger.Info("CreateManualAppointment: client=%q, service=%s, staff=%s, date_time=%s",
		req.ClientName, req.ServiceID, req.StaffID, req.DateTime.UTC().Format("2006-01-02T15:04"))

	appointment, err := uc.executeManual(ctx, req)
	uc.record(err)
	return appointment, err
}

func (uc *UseCase) executeManual(ctx context.Context, req *ManualRequest) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateManualRequest(req); err != nil {
		uc.logger.Warn("CreateManualAppointment: validation failed: %v", err)
		return nil, err
	}
	dateTime := req.DateTime.UTC()

	// 2. Запись возможна только в будущее
	if err := validateFuture(dateTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateManualAppointment: date_time %s is not in the future", dateTime)
		return nil, err
	}

	// 3. Услуга и мастер
	service, staff, err := uc.loadTarget(ctx, "CreateManualAppointment", req.ServiceID, req.StaffID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	appointment := &domain.Appointment{
		ID:          id,
		UserID:      manualUserPrefix + id[:8],
		UserName:    strings.TrimSpace(req.ClientName),
		UserPhone:   strings.TrimSpace(req.ClientPhone),
		UserEmail:   strings.TrimSpace(req.ClientEmail),
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		DateTime:    dateTime,
		Status:      domain.StatusConfirmed,
		IsManual:    true,
	}

	// 4. Проверка и сохранение в транзакции
	return uc.book(ctx, "CreateManualAppointment", appointment, service.DurationMinutes, false)
}

func (uc *UseCase) loadTarget(ctx context.Context, op, serviceID, staffID string) (*domain.Service, *domain.Staff, error) {
	service, err := uc.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("%s: service id=%s not found", op, serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("%s: failed to get service id=%s: %v", op, serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("%s: staff id=%s not found", op, staffID)
			return nil, nil, ErrStaffNotFound
		}
		uc.logger.Error("%s: failed to get staff id=%s: %v", op, staffID, err)
		return nil, nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	return service, staff, nil
}

// book проверяет день, слот и интервал мастера и сохраняет запись
func (uc *UseCase) book(ctx context.Context, op string, appointment *domain.Appointment, durationMinutes int, requireSlot bool) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Рабочий ли день (не прошлое, рабочий день недели, нет закрытия)
		open, settings, err := uc.availability.IsDayOpen(txCtx, appointment.DateTime)
		if err != nil {
			uc.logger.Error("%s: failed to check day: %v", op, err)
			return fmt.Errorf("%w: failed to check day: %w", ErrInternal, err)
		}
		if !open {
			uc.logger.Warn("%s: salon is closed on %s", op, types.FormatDate(appointment.DateTime))
			return ErrDayClosed
		}

		// Время должно совпадать со слотом сетки
		if requireSlot {
			if appointment.DateTime.Second() != 0 || appointment.DateTime.Nanosecond() != 0 ||
				!settings.HasTimeSlot(types.NewTimeString(appointment.DateTime)) {
				uc.logger.Warn("%s: %s is not a configured slot", op, appointment.DateTime.Format("15:04:05"))
				return ErrInvalidTimeSlot
			}
		}

		// Интервал мастера свободен (строки блокируются FOR UPDATE)
		free, err := uc.availability.CheckSlot(txCtx, appointment.StaffID, appointment.DateTime, durationMinutes, nil)
		if err != nil {
			uc.logger.Error("%s: failed to check slot: %v", op, err)
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("%s: staff=%s is busy at %s", op, appointment.StaffID, appointment.DateTime)
			return ErrSlotNotAvailable
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("%s: failed to create appointment: %v", op, err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Параллельная запись на тот же интервал
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("%s: serialization conflict for staff=%s at %s", op, appointment.StaffID, appointment.DateTime)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("%s: transaction error: %v", op, err)
			return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("%s: successfully created appointment id=%s", op, result.ID)
	return result, nil
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.AppointmentOutcome(OutcomeCreated)
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.AppointmentOutcome(OutcomeConflict)
	case errors.Is(err, ErrInternal):
		uc.metrics.AppointmentOutcome(OutcomeError)
	default:
		uc.metrics.AppointmentOutcome(OutcomeRejected)
	}
}
