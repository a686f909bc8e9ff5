package salonapi

import "sync"

// Session bearer-токен вошедшего пользователя
// Передаётся в каждый вызов клиента явно; 401 от сервера делает её недействительной
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
	valid bool
}

// NewSession создает сессию из выданного токена
func NewSession(token string, user *User) *Session {
	return &Session{token: token, user: user, valid: token != ""}
}

// Token текущий токен; пустая строка, если сессия недействительна
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return ""
	}
	return s.token
}

// User профиль, полученный при входе
func (s *Session) User() *User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Valid true, пока сервер не отверг токен
func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.valid
}

// Invalidate помечает сессию недействительной; требуется повторный вход
func (s *Session) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}
