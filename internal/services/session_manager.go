package services

import (
	"errors"
	"fmt"
	"strings"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain"
)

var (
	ErrLoginFailed      = errors.New("login failed")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// SessionManager turns credentials into an API session and checks that a
// persisted session is still accepted by the API.
type SessionManager struct {
	API catalogapi.API
}

func NewSessionManager(api catalogapi.API) *SessionManager {
	return &SessionManager{API: api}
}

func (m *SessionManager) Login(cred domain.Credentials) (domain.Session, error) {
	cred.Username = strings.TrimSpace(cred.Username)
	if cred.Username == "" || cred.Password == "" {
		return domain.Session{}, ErrLoginFailed
	}
	s, err := m.API.SignIn(cred)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	return s, nil
}

// Restore runs the liveness check for a persisted session. No retry.
func (m *SessionManager) Restore(s domain.Session) error {
	if !s.Valid() {
		return ErrNotAuthenticated
	}
	if err := m.API.Check(s); err != nil {
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return nil
}
