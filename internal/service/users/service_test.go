package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeUsers struct {
	byID map[string]*domain.User
	seq  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*domain.User{}}
}

func (f *fakeUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, userRepo.ErrEmailTaken
		}
	}
	f.seq++
	u.ID = "user-" + string(rune('0'+f.seq))
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) ListClients(ctx context.Context) ([]*domain.User, error) {
	result := make([]*domain.User, 0)
	for _, u := range f.byID {
		if !u.IsAdmin {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeUsers) SetApproved(ctx context.Context, id string, approved bool) error {
	u, ok := f.byID[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.IsApproved = approved
	return nil
}

func (f *fakeUsers) SetNotificationPreferences(ctx context.Context, id string, prefs []string) error {
	u, ok := f.byID[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.NotificationPreferences = prefs
	return nil
}

func newTestService(autoApprove bool) (*Service, *fakeUsers, *auth.TokenManager) {
	repo := newFakeUsers()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewService(repo, auth.NewPasswordHasher(bcrypt.MinCost), tokens, autoApprove, logger.NewNop())
	return svc, repo, tokens
}

func validInput() *RegisterInput {
	return &RegisterInput{Email: " Maria@Example.com ", Password: "secret", Name: "Maria", Phone: "+393331234567"}
}

func TestRegister(t *testing.T) {
	svc, _, tokens := newTestService(false)

	res, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", res.User.Email)
	assert.False(t, res.User.IsApproved)
	assert.NotEqual(t, "secret", res.User.PasswordHash)

	claims, err := tokens.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID())
	assert.False(t, claims.IsAdmin)

	_, err = svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_AutoApprove(t *testing.T) {
	svc, _, _ := newTestService(true)

	res, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, res.User.IsApproved)
	assert.True(t, res.User.CanBook())
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(false)

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"empty password", func(in *RegisterInput) { in.Password = "" }},
		{"empty name", func(in *RegisterInput) { in.Name = "  " }},
		{"phone without plus", func(in *RegisterInput) { in.Phone = "3331234567" }},
		{"phone too long", func(in *RegisterInput) { in.Phone = "+1234567890123456" }},
		{"phone with spaces", func(in *RegisterInput) { in.Phone = "+39 333 123" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(false)
	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "MARIA@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	_, err = svc.Login(context.Background(), "maria@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNotificationPreferences(t *testing.T) {
	svc, _, _ := newTestService(false)
	res, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	id := res.User.ID

	prefs, err := svc.NotificationPreferences(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, prefs)

	prefs, err = svc.UpdateNotificationPreferences(context.Background(), id, []string{"1hour", "1day", "1hour"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1hour", "1day"}, prefs)

	_, err = svc.UpdateNotificationPreferences(context.Background(), id, []string{"5min"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateNotificationPreferences(context.Background(), "missing", []string{"1day"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetApproved(t *testing.T) {
	svc, _, _ := newTestService(false)
	res, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	user, err := svc.SetApproved(context.Background(), res.User.ID, true)
	require.NoError(t, err)
	assert.True(t, user.IsApproved)

	clients, err := svc.ListClients(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	_, err = svc.SetApproved(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
