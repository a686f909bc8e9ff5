package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Repository репозиторий услуг и мастеров салона
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ============================================================
// Услуги
// ============================================================

// ListServices возвращает все услуги по названию
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return r.queryServices(ctx, "ListServices", psqlbuilder.
		Select("id", "name", "description", "price", "duration_minutes").
		From("services").
		OrderBy("name ASC"))
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	services, err := r.queryServices(ctx, "GetService", psqlbuilder.
		Select("id", "name", "description", "price", "duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return services[0], nil
}

// ServiceDurations возвращает длительности услуг по их ID
// Отсутствующие услуги в результат не попадают
func (r *Repository) ServiceDurations(ctx context.Context, ids []string) (map[string]int, error) {
	result := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	services, err := r.queryServices(ctx, "ServiceDurations", psqlbuilder.
		Select("id", "name", "description", "price", "duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}

	for _, s := range services {
		result[s.ID] = s.DurationMinutes
	}
	return result, nil
}

// CreateService создает услугу
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("services").
		Columns("id", "name", "description", "price", "duration_minutes").
		Values(s.ID, s.Name, s.Description, s.Price, s.DurationMinutes).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// UpdateService сохраняет все поля услуги
func (r *Repository) UpdateService(ctx context.Context, s *domain.Service) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name).
		Set("description", s.Description).
		Set("price", s.Price).
		Set("duration_minutes", s.DurationMinutes).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateService", query, args, ErrServiceNotFound)
}

// DeleteService удаляет услугу; записи с ней сохраняют денормализованное название
func (r *Repository) DeleteService(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "DeleteService", query, args, ErrServiceNotFound)
}

func (r *Repository) queryServices(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return services, nil
}

// ============================================================
// Мастера
// ============================================================

// ListStaff возвращает всех мастеров по имени
func (r *Repository) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "specialties").
		From("staff").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.Name, pq.Array(&s.Specialties)); err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// GetStaff получает мастера по ID
func (r *Repository) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "specialties").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, pq.Array(&s.Specialties))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan row: %v", ErrScanRow, err)
	}

	return &s, nil
}

// CreateStaff создает мастера
func (r *Repository) CreateStaff(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Specialties == nil {
		s.Specialties = []string{}
	}

	query, args, err := psqlbuilder.Insert("staff").
		Columns("id", "name", "specialties").
		Values(s.ID, s.Name, pq.Array(s.Specialties)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateStaff - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateStaff - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// UpdateStaff сохраняет все поля мастера
func (r *Repository) UpdateStaff(ctx context.Context, s *domain.Staff) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("name", s.Name).
		Set("specialties", pq.Array(s.Specialties)).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStaff - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateStaff", query, args, ErrStaffNotFound)
}

// DeleteStaff удаляет мастера
func (r *Repository) DeleteStaff(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteStaff - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "DeleteStaff", query, args, ErrStaffNotFound)
}

func execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
