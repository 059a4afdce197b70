package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"commandcenter/internal/models"
	"commandcenter/internal/validation"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords
	// so login failures never leak whether an account exists.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// AuthService owns credentials and issued sessions. The two collections are
// guarded independently so a password change never contends with token
// validation.
type AuthService struct {
	ttl time.Duration

	credMu      sync.RWMutex
	credentials map[string]models.Credential

	sessMu   sync.RWMutex
	sessions map[string]models.Session
}

func NewAuthService(sessionTTL time.Duration) *AuthService {
	return &AuthService{
		ttl:         sessionTTL,
		credentials: make(map[string]models.Credential),
		sessions:    make(map[string]models.Session),
	}
}

// Login verifies the credentials and mints a new session on success.
func (s *AuthService) Login(username, password string) (models.Session, error) {
	s.credMu.RLock()
	credential, ok := s.credentials[username]
	s.credMu.RUnlock()

	if !ok || !verifyPassword(password, credential.PasswordHash) {
		return models.Session{}, ErrInvalidCredentials
	}

	now := time.Now()
	session := models.Session{
		Token:     uuid.New().String(),
		Username:  credential.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.sessMu.Lock()
	s.sessions[session.Token] = session
	s.sessMu.Unlock()

	return session, nil
}

// ValidateToken sweeps expired sessions, then returns the session for the
// token if one is still held.
func (s *AuthService) ValidateToken(token string) (models.Session, bool) {
	s.sweepSessions()

	s.sessMu.RLock()
	session, ok := s.sessions[token]
	s.sessMu.RUnlock()
	return session, ok
}

// SetPassword hashes the password and overwrites any existing credential for
// that username, creating it if absent.
func (s *AuthService) SetPassword(username, password string) error {
	if validation.IsBlank(username) {
		return ErrUsernameRequired
	}
	if validation.IsBlank(password) {
		return ErrPasswordRequired
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	s.credMu.Lock()
	s.credentials[username] = models.Credential{Username: username, PasswordHash: hash}
	s.credMu.Unlock()

	return nil
}

// ActiveSessions returns a post-sweep snapshot of all live sessions.
func (s *AuthService) ActiveSessions() []models.Session {
	s.sweepSessions()

	s.sessMu.RLock()
	defer s.sessMu.RUnlock()

	list := make([]models.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		list = append(list, session)
	}
	return list
}

// SeedDefaultOperator registers the default credential once, when no account
// with that username exists yet. It reports whether seeding happened so the
// caller can warn about the well-known default password.
func (s *AuthService) SeedDefaultOperator(username, password string) (bool, error) {
	s.credMu.RLock()
	_, exists := s.credentials[username]
	s.credMu.RUnlock()
	if exists {
		return false, nil
	}

	if err := s.SetPassword(username, password); err != nil {
		return false, err
	}
	return true, nil
}

// sweepSessions lazily discards every session past its expiry. There is no
// background timer; validation and listing trigger the sweep.
func (s *AuthService) sweepSessions() {
	now := time.Now()

	s.sessMu.Lock()
	defer s.sessMu.Unlock()

	for token, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
