package session

import "sync"

// DemoToken is the sentinel token value meaning "operate fully client-side
// with no network calls". Any backend-dependent flow must check IsDemo
// before reaching for the gateway.
const DemoToken = "demo-token"

// Store holds the auth token for the signed-in user. Single writer (the
// login/logout flow), many readers (every gateway call and handler).
type Store struct {
	mu    sync.RWMutex
	token string
	user  User
}

// User is the signed-in identity kept alongside the token for status and
// profile display.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// NewStore creates an empty session store (no token, unauthenticated).
func NewStore() *Store {
	return &Store{}
}

// Token returns the current token and whether one is set.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set overwrites the stored token and user. Subsequent gateway calls use it
// immediately.
func (s *Store) Set(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear removes the token and user. Subsequent gateway calls proceed
// unauthenticated.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
}

// IsDemo reports whether the session runs against local mock data.
func (s *Store) IsDemo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token == DemoToken
}

// User returns the signed-in user, if any.
func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}
