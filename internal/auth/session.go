package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrAuthentication is returned by Login when the credentials do not match.
const ErrAuthentication = constError("invalid username or password")

// DefaultLoginDelay is how long Login waits before answering.
const DefaultLoginDelay = time.Second

// LoginObserver is notified of every login attempt.
type LoginObserver interface {
	ObserveLogin(success bool)
}

// Session is the authentication state of one user of the tool.
type Session struct {
	verifier Verifier
	store    Store
	delay    time.Duration
	logger   zerolog.Logger
	observer LoginObserver

	mu            sync.RWMutex
	authenticated bool
	user          string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLoginDelay sets the feedback delay applied before Login answers.
func WithLoginDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

// WithSessionLogger sets the logger used for login and logout events.
func WithSessionLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithLoginObserver registers an observer for login attempts.
func WithLoginObserver(o LoginObserver) SessionOption {
	return func(s *Session) { s.observer = o }
}

// NewSession creates a logged-out session. A nil store keeps state in memory.
func NewSession(verifier Verifier, store Store, opts ...SessionOption) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	s := &Session{
		verifier: verifier,
		store:    store,
		delay:    DefaultLoginDelay,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads a previously saved user from the store.
func (s *Session) Restore() error {
	user, err := s.store.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = user != ""
	return nil
}

// Login waits the feedback delay and then checks the credentials. On success
// the user is persisted; on failure ErrAuthentication is returned and the
// session is left untouched.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	ok := s.verifier.Verify(username, password)
	if s.observer != nil {
		s.observer.ObserveLogin(ok)
	}
	if !ok {
		s.logger.Warn().Str("username", username).Msg("login rejected")
		return ErrAuthentication
	}

	if err := s.store.Save(username); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.user = username
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info().Str("username", username).Msg("login succeeded")
	return nil
}

// Logout forgets the user in memory and in the store.
func (s *Session) Logout() error {
	s.mu.Lock()
	user := s.user
	s.user = ""
	s.authenticated = false
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.logger.Info().Str("username", user).Msg("logged out")
	return nil
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns the logged-in username, or "".
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
