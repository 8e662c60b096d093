package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// SessionState tells the caller what the store knows about the user.
type SessionState int

const (
	// StateLoading means Load has not run yet.
	StateLoading SessionState = iota
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionStore persists the logged-in user to a file so the app can skip
// the login screen on restart. Writes go through a temp file and rename
// so a crash mid-write never truncates the session.
type SessionStore struct {
	mu    sync.RWMutex
	path  string
	state SessionState
	user  User
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path, state: StateLoading}
}

// Load reads the persisted session, if any. A missing or unreadable file
// yields the anonymous state rather than an error; the user just logs in
// again.
func (s *SessionStore) Load() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.state = StateAnonymous
		return s.state
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil || user.UserID == 0 {
		s.state = StateAnonymous
		return s.state
	}

	s.user = user
	s.state = StateAuthenticated
	return s.state
}

func (s *SessionStore) Login(user User) error {
	if user.UserID == 0 {
		return errors.New("session: user has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(user); err != nil {
		return err
	}

	s.user = user
	s.state = StateAuthenticated
	return nil
}

func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = User{}
	s.state = StateAnonymous

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// User returns the current user and whether one is logged in.
func (s *SessionStore) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state == StateAuthenticated
}

func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// UpdateImage keeps the cached employee record in step with an upload
// without a round trip to the API.
func (s *SessionStore) UpdateImage(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated {
		return errors.New("session: not authenticated")
	}

	user := s.user
	user.Employee.UserImg = filename
	if err := s.persist(user); err != nil {
		return err
	}

	s.user = user
	return nil
}

func (s *SessionStore) persist(user User) error {
	raw, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
