package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeUsers struct {
	registerErr error
	loginErr    error
}

func (f *fakeUsers) Register(ctx context.Context, in *users.RegisterInput) (*users.AuthResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &users.AuthResult{AccessToken: "tok", User: &domain.User{ID: "u1", Email: in.Email, Name: in.Name, Phone: in.Phone}}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*users.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &users.AuthResult{AccessToken: "tok", User: &domain.User{ID: "u1", Email: email, IsApproved: true}}, nil
}

func (f *fakeUsers) Get(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func TestRegister(t *testing.T) {
	body := `{"email":"maria@example.com","password":"secret","name":"Maria","phone":"+39333"}`

	tests := []struct {
		name     string
		fake     *fakeUsers
		wantCode int
	}{
		{"ok", &fakeUsers{}, http.StatusOK},
		{"email taken", &fakeUsers{registerErr: users.ErrEmailTaken}, http.StatusBadRequest},
		{"invalid phone", &fakeUsers{registerErr: users.ErrInvalidInput}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.fake, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	h := NewHandler(&fakeUsers{}, logger.NewNop())
	rec := httptest.NewRecorder()

	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"maria@example.com","password":"secret"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.True(t, resp.User.IsApproved)
	assert.NotNil(t, resp.User.NotificationPreferences)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := NewHandler(&fakeUsers{loginErr: users.ErrInvalidCredentials}, logger.NewNop())
	rec := httptest.NewRecorder()

	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"maria@example.com","password":"wrong"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_RequiresUser(t *testing.T) {
	h := NewHandler(&fakeUsers{}, logger.NewNop())
	rec := httptest.NewRecorder()

	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
