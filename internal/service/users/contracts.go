package users

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListClients(ctx context.Context) ([]*domain.User, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	SetNotificationPreferences(ctx context.Context, id string, prefs []string) error
}

// PasswordHasher хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer выпуск access-токенов
type TokenIssuer interface {
	Issue(userID, email string, isAdmin bool) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
