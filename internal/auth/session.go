package auth

import (
	"sync"

	"github.com/chattatrader/chattacli/internal/models"
)

// Session is the explicit session context handed to components that need
// the signed-in user. It replaces ambient globals: Login initializes it,
// Logout tears it down, and nothing survives the process.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

// NewSession creates an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// Login installs the authenticated user.
func (s *Session) Login(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Logout clears the session.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.User() != nil
}

// Token returns the session's API token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}
