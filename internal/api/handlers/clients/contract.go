package clients

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type UserService interface {
	ListClients(ctx context.Context) ([]*domain.User, error)
	SetApproved(ctx context.Context, id string, approved bool) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
