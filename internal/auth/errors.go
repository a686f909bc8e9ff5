package auth

import "errors"

var (
	// ErrInvalidToken возвращается для неподписанного, испорченного или просроченного токена
	ErrInvalidToken = errors.New("auth: invalid or expired token")

	// ErrHashPassword возвращается, когда bcrypt не смог захешировать пароль
	ErrHashPassword = errors.New("auth: failed to hash password")

	// ErrSignToken возвращается при ошибке подписи токена
	ErrSignToken = errors.New("auth: failed to sign token")
)
