package closure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const pgUniqueViolation = "23505"

// Repository репозиторий дней, когда салон закрыт
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает закрытия в диапазоне дат [from, to] включительно; nil границы не ограничивают
func (r *Repository) List(ctx context.Context, from, to *time.Time) ([]*domain.Closure, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "date", "reason").
		From("closures").
		OrderBy("date ASC")

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": types.DateOnly(*from)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": types.DateOnly(*to)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]*domain.Closure, 0)
	for rows.Next() {
		var c domain.Closure
		if err := rows.Scan(&c.ID, &c.Date, &c.Reason); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		c.Date = types.DateOnly(c.Date)
		closures = append(closures, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}

// Create добавляет закрытие; на одну дату допускается одно закрытие
func (r *Repository) Create(ctx context.Context, c *domain.Closure) (*domain.Closure, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Date = types.DateOnly(c.Date)

	query, args, err := psqlbuilder.Insert("closures").
		Columns("id", "date", "reason").
		Values(c.ID, c.Date, c.Reason).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrClosureExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// Delete удаляет закрытие
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closures").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClosureNotFound
	}

	return nil
}
