package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// SessionService holds the identities of logged-in users for the lifetime of
// the process. Tokens are opaque random handles; nothing is persisted and
// nothing expires, mirroring the form application's in-memory current-user
// state.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]Identity
}

var sessionServiceInstance *SessionService

// InitSessionService creates the session registry
func InitSessionService() *SessionService {
	sessionServiceInstance = &SessionService{
		sessions: make(map[string]Identity),
	}
	return sessionServiceInstance
}

// GetSessionService returns the session registry instance
func GetSessionService() *SessionService {
	return sessionServiceInstance
}

// SetSessionService sets the session registry instance (primarily for testing)
func SetSessionService(s *SessionService) {
	sessionServiceInstance = s
}

// Create registers a new session for the identity and returns its token
func (s *SessionService) Create(identity Identity) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = identity
	return token, nil
}

// Get resolves a token to the identity it was issued for
func (s *SessionService) Get(token string) (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.sessions[token]
	return identity, ok
}

// Delete removes a session; deleting an unknown token is a no-op
func (s *SessionService) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
