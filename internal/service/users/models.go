package users

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// RegisterInput данные регистрации клиента
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// AuthResult выданный токен и профиль пользователя
type AuthResult struct {
	AccessToken string
	User        *domain.User
}
