// Package session holds the single source of truth for whether the user is
// logged in. Dependents read it through Current and react to changes through
// Subscribe; nothing outside the store mutates it.
package session

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyToken   = errors.New("session token is empty")
	ErrTokenExpired = errors.New("session token has expired")
)

// Session is the client's belief about the user's credential.
type Session struct {
	Token           string
	ExpiresAt       time.Time // Zero when the token carries no expiry.
	IsAuthenticated bool
}

// Persister keeps the token across process restarts.
type Persister interface {
	SaveToken(token string) error
	LoadToken() (string, error) // "" when nothing is stored.
	ClearToken() error
}

type Listener func(Session)

type Store struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time

	listeners map[int]Listener
	nextID    int

	persister Persister
	now       func() time.Time
}

type Option func(*Store)

func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty, unauthenticated store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the session as of now. A token that expired since login
// reads as unauthenticated.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Session {
	return Session{
		Token:           s.token,
		ExpiresAt:       s.expiresAt,
		IsAuthenticated: s.token != "" && !s.expiredLocked(),
	}
}

func (s *Store) expiredLocked() bool {
	return !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt)
}

// Login stores token and notifies subscribers. If the token cannot be
// persisted the in-memory session is still authenticated and the persist
// error is returned.
func (s *Store) Login(token string) (Session, error) {
	if token == "" {
		return s.Current(), ErrEmptyToken
	}

	expiresAt := tokenExpiry(token)
	s.mu.Lock()
	if !expiresAt.IsZero() && !s.now().Before(expiresAt) {
		s.mu.Unlock()
		return s.Current(), ErrTokenExpired
	}
	s.token = token
	s.expiresAt = expiresAt
	current := s.snapshotLocked()
	s.mu.Unlock()

	var persistErr error
	if s.persister != nil {
		if err := s.persister.SaveToken(token); err != nil {
			log.Error().Err(err).Msg("failed to persist session token")
			persistErr = fmt.Errorf("failed to persist session: %w", err)
		}
	}

	log.Debug().Time("expires_at", expiresAt).Msg("session authenticated")
	s.notify(current)
	return current, persistErr
}

// Logout clears the session. Calling it while already logged out is a no-op
// and does not notify.
func (s *Store) Logout() Session {
	s.mu.Lock()
	if s.token == "" {
		current := s.snapshotLocked()
		s.mu.Unlock()
		return current
	}
	s.token = ""
	s.expiresAt = time.Time{}
	current := s.snapshotLocked()
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.ClearToken(); err != nil {
			log.Warn().Err(err).Msg("failed to clear persisted session token")
		}
	}

	log.Debug().Msg("session cleared")
	s.notify(current)
	return current
}

// Restore loads a persisted token and logs in with it. An expired token is
// removed from the persister and the store stays logged out.
func (s *Store) Restore() (Session, error) {
	if s.persister == nil {
		return s.Current(), nil
	}

	token, err := s.persister.LoadToken()
	if err != nil {
		return s.Current(), fmt.Errorf("failed to load session: %w", err)
	}
	if token == "" {
		return s.Current(), nil
	}

	current, err := s.Login(token)
	if errors.Is(err, ErrTokenExpired) {
		log.Info().Msg("stored session token has expired")
		if err := s.persister.ClearToken(); err != nil {
			log.Warn().Err(err).Msg("failed to clear expired session token")
		}
		return current, nil
	}
	return current, err
}

// Subscribe registers fn to be called synchronously after every transition.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(current Session) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	// Subscription order.
	slices.Sort(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.listeners[id]
		s.mu.Unlock()
		if ok {
			fn(current)
		}
	}
}
