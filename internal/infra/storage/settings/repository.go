package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Repository репозиторий настроек салона (одна строка с id = app_settings)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохранённые настройки
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"hero_title",
		"hero_subtitle",
		"hero_description",
		"hero_image_url",
		"admin_phone",
		"time_slots",
		"working_days",
		"opening_time",
		"closing_time",
	).
		From("settings").
		Where(squirrel.Eq{"id": domain.SettingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s           domain.Settings
		slots       []string
		workingDays []int64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.HeroTitle,
		&s.HeroSubtitle,
		&s.HeroDescription,
		&s.HeroImageURL,
		&s.AdminPhone,
		pq.Array(&slots),
		pq.Array(&workingDays),
		&s.OpeningTime,
		&s.ClosingTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.TimeSlots, err = types.ParseTimeStrings(slots)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - parse time_slots: %v", ErrScanRow, err)
	}

	s.WorkingDays = make([]int, len(workingDays))
	for i, d := range workingDays {
		s.WorkingDays[i] = int(d)
	}

	return &s, nil
}

// Upsert создает или полностью перезаписывает настройки
func (r *Repository) Upsert(ctx context.Context, s *domain.Settings) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	workingDays := make([]int64, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("settings").
		Columns(
			"id",
			"hero_title",
			"hero_subtitle",
			"hero_description",
			"hero_image_url",
			"admin_phone",
			"time_slots",
			"working_days",
			"opening_time",
			"closing_time",
		).
		Values(
			domain.SettingsID,
			s.HeroTitle,
			s.HeroSubtitle,
			s.HeroDescription,
			s.HeroImageURL,
			s.AdminPhone,
			pq.Array(types.FormatTimeStrings(s.TimeSlots)),
			pq.Array(workingDays),
			s.OpeningTime,
			s.ClosingTime,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			hero_title = EXCLUDED.hero_title,
			hero_subtitle = EXCLUDED.hero_subtitle,
			hero_description = EXCLUDED.hero_description,
			hero_image_url = EXCLUDED.hero_image_url,
			admin_phone = EXCLUDED.admin_phone,
			time_slots = EXCLUDED.time_slots,
			working_days = EXCLUDED.working_days,
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute: %v", ErrExecQuery, err)
	}

	s.ID = domain.SettingsID
	return nil
}
