package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
)

var phoneRe = regexp.MustCompile(domain.PhonePattern)

// Service регистрация, вход и профиль клиента
type Service struct {
	repo        UserRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	autoApprove bool
	logger      Logger
}

// NewService создает сервис пользователей
// autoApprove - новые клиенты сразу могут записываться без подтверждения администратором
func NewService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, autoApprove bool, logger Logger) *Service {
	return &Service{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		autoApprove: autoApprove,
		logger:      logger,
	}
}

// Register регистрирует клиента и сразу выдаёт токен
func (s *Service) Register(ctx context.Context, in *RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	s.logger.Info("Register: email=%s", email)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	phone := strings.TrimSpace(in.Phone)
	if !phoneRe.MatchString(phone) {
		return nil, fmt.Errorf("%w: phone must start with + followed by up to 15 digits", ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        phone,
		IsApproved:   s.autoApprove,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email %s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%s registered, approved=%t", user.ID, user.IsApproved)
	return s.issue("Register", user)
}

// Login проверяет пароль и выдаёт токен
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Login: email=%s", email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Warn("Login: wrong password for user id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issue("Login", user)
}

func (s *Service) issue(op string, user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		s.logger.Error("%s: failed to issue token for user id=%s: %v", op, user.ID, err)
		return nil, fmt.Errorf("%w: %s - issue token: %v", ErrInternal, op, err)
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}

// Get возвращает пользователя по ID
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr("Get", id, err)
	}
	return user, nil
}

// NotificationPreferences возвращает выбранные интервалы напоминаний
func (s *Service) NotificationPreferences(ctx context.Context, userID string) ([]string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.NotificationPreferences == nil {
		return []string{}, nil
	}
	return user.NotificationPreferences, nil
}

// UpdateNotificationPreferences сохраняет интервалы напоминаний
func (s *Service) UpdateNotificationPreferences(ctx context.Context, userID string, prefs []string) ([]string, error) {
	s.logger.Info("UpdateNotificationPreferences: user=%s, prefs=%v", userID, prefs)

	allowed := make(map[string]bool, len(domain.NotificationPreferences))
	for _, p := range domain.NotificationPreferences {
		allowed[p] = true
	}

	result := make([]string, 0, len(prefs))
	seen := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		if !allowed[p] {
			return nil, fmt.Errorf("%w: invalid preference %q, valid options: %s",
				ErrInvalidInput, p, strings.Join(domain.NotificationPreferences, ", "))
		}
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	if err := s.repo.SetNotificationPreferences(ctx, userID, result); err != nil {
		return nil, s.mapErr("UpdateNotificationPreferences", userID, err)
	}
	return result, nil
}

// ListClients список клиентов для администратора
func (s *Service) ListClients(ctx context.Context) ([]*domain.User, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		s.logger.Error("ListClients: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClients - repository error: %v", ErrInternal, err)
	}
	return clients, nil
}

// SetApproved разрешает или запрещает клиенту онлайн-запись
func (s *Service) SetApproved(ctx context.Context, id string, approved bool) (*domain.User, error) {
	s.logger.Info("SetApproved: user=%s, approved=%t", id, approved)

	if err := s.repo.SetApproved(ctx, id, approved); err != nil {
		return nil, s.mapErr("SetApproved", id, err)
	}
	return s.Get(ctx, id)
}

func (s *Service) mapErr(op, id string, err error) error {
	if errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Warn("%s: user id=%s not found", op, id)
		return ErrUserNotFound
	}
	s.logger.Error("%s: repository error for user id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
