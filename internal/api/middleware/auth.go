package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/auth"
)

const (
	msgMissingToken  = "требуется авторизация"
	msgInvalidToken  = "недействительный или просроченный токен"
	msgAdminRequired = "требуются права администратора"
)

type claimsKey struct{}

// TokenParser проверка access-токена
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// Auth проверяет Bearer токен и кладёт claims в контекст
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// Admin пропускает только администраторов; ставится после Auth
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		if !claims.IsAdmin {
			handlers.RespondForbidden(w, msgAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithClaims кладёт claims в контекст
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims достаёт claims из контекста
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

// GetUserID ID текущего пользователя
func GetUserID(ctx context.Context) (string, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID(), true
}
