package auth

import (
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse HTTP response model
type TokenResponse struct {
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type"`
	User        *handlers.UserResponse `json:"user"`
}

func (r *RegisterRequest) toInput() *users.RegisterInput {
	return &users.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Phone:    r.Phone,
	}
}

func fromResult(res *users.AuthResult) *TokenResponse {
	return &TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        handlers.FromDomainUser(res.User),
	}
}
