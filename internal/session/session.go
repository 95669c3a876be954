// Package session holds the authenticated user and bearer token for the running client
// and persists them in the durable session store so they survive restarts.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/logging"
	"taskflow/internal/repository/sqlite"
)

// Keys used in the session store
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is the durable key/value storage a Session persists into
type Store interface {
	GetValue(ctx context.Context, key string) (*sqlite.SessionValue, error)
	SetValue(ctx context.Context, value *sqlite.SessionValue) error
	DeleteValue(ctx context.Context, key string) error
}

// Session is the explicit owner of the auth token. The HTTP client reads it per
// request through Token, so a login or logout takes effect on the next call.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *domain.User

	store  Store
	mapper *UserMapper
	now    func() time.Time
}

// New creates an empty session backed by store. A nil store keeps everything in memory.
func New(store Store) *Session {
	return &Session{store: store, mapper: NewUserMapper(), now: time.Now}
}

// Token returns the current bearer token, or "" when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached user, if any
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is held and not known to be expired
func (s *Session) Authenticated() bool {
	return s.Token() != "" && !s.Expired()
}

// ExpiresAt reads the exp claim of a JWT token without verifying its signature.
// Opaque tokens and tokens without exp report false.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

// Expired reports whether the token carries an exp claim in the past
func (s *Session) Expired() bool {
	exp, ok := s.ExpiresAt()
	return ok && !s.now().Before(exp)
}

// Restore re-hydrates the token and user from the store. A missing or expired token
// leaves the session logged out; an expired one is also removed from the store.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	token, err := s.readValue(ctx, KeyToken)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	raw, err := s.readValue(ctx, KeyUser)
	if err != nil {
		return err
	}
	user, ok := s.mapper.FromStore(raw)
	if !ok && raw != "" {
		logging.Debugf("Ignoring unreadable cached user: %q\n", raw)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if s.Expired() {
		return s.Clear(ctx)
	}
	return nil
}

// Save stores the token and user returned by login or registration
func (s *Session) Save(ctx context.Context, auth domain.AuthResponse) error {
	if auth.Token == "" {
		return errors.NewAuthenticationError("backend returned no token", nil)
	}

	s.mu.Lock()
	s.token = auth.Token
	user := auth.User
	s.user = &user
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.SetValue(ctx, &sqlite.SessionValue{Key: KeyToken, Value: auth.Token}); err != nil {
		return err
	}
	return s.persistUser(ctx, user)
}

// SetUser replaces the cached user, e.g. after refreshing it from /auth/me
func (s *Session) SetUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.persistUser(ctx, user)
}

// Clear forgets the token and user both in memory and in the store
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	for _, key := range []string{KeyToken, KeyUser} {
		if err := s.store.DeleteValue(ctx, key); err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}
	}
	return nil
}

func (s *Session) persistUser(ctx context.Context, user domain.User) error {
	value, err := s.mapper.ToStore(user)
	if err != nil {
		return err
	}
	return s.store.SetValue(ctx, value)
}

func (s *Session) readValue(ctx context.Context, key string) (string, error) {
	v, err := s.store.GetValue(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", nil
		}
		return "", err
	}
	return v.Value, nil
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
