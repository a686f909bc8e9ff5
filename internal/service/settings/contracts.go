package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

// SettingsCache интерфейс кэша настроек
type SettingsCache interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Set(ctx context.Context, s *domain.Settings) error
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
