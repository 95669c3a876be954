package session

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/domain"
	"taskflow/internal/logging"
	"taskflow/internal/repository/sqlite"
)

var alice = domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func setupTestStore(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSession_EmptyByDefault(t *testing.T) {
	s := New(nil)

	assert.Equal(t, "", s.Token())
	assert.False(t, s.Authenticated())
	_, ok := s.User()
	assert.False(t, ok)
	assert.NoError(t, s.Restore(context.Background()))
}

func TestSession_SaveRestoreClear(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	token := signedToken(t, time.Now().Add(time.Hour))

	first := New(store)
	require.NoError(t, first.Save(ctx, domain.AuthResponse{User: alice, Token: token}))
	assert.True(t, first.Authenticated())

	// A new process re-hydrates from the store
	second := New(store)
	require.NoError(t, second.Restore(ctx))
	assert.Equal(t, token, second.Token())
	user, ok := second.User()
	require.True(t, ok)
	assert.Equal(t, alice, user)

	require.NoError(t, second.Clear(ctx))
	assert.Equal(t, "", second.Token())

	third := New(store)
	require.NoError(t, third.Restore(ctx))
	assert.Equal(t, "", third.Token())
	_, ok = third.User()
	assert.False(t, ok)
}

func TestSession_ClearIsIdempotent(t *testing.T) {
	s := New(setupTestStore(t))
	assert.NoError(t, s.Clear(context.Background()))
	assert.NoError(t, s.Clear(context.Background()))
}

func TestSession_RestoreDropsExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	expired := signedToken(t, time.Now().Add(-time.Minute))

	require.NoError(t, New(store).Save(ctx, domain.AuthResponse{User: alice, Token: expired}))

	s := New(store)
	require.NoError(t, s.Restore(ctx))
	assert.Equal(t, "", s.Token())

	_, err := store.GetValue(ctx, KeyToken)
	assert.Error(t, err, "expired token must be removed from the store")
}

func TestSession_RestoreLogsUnreadableUser(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	require.NoError(t, New(store).Save(ctx, domain.AuthResponse{User: alice, Token: "opaque-token"}))
	require.NoError(t, store.SetValue(ctx, &sqlite.SessionValue{Key: KeyUser, Value: "{not json"}))

	var buf bytes.Buffer
	previous := logging.SetDebugOutput(&buf)
	defer logging.SetDebugOutput(previous)
	t.Setenv("TASKFLOW_DEBUG", "1")

	s := New(store)
	require.NoError(t, s.Restore(ctx))
	assert.Equal(t, "opaque-token", s.Token())
	_, ok := s.User()
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "unreadable cached user")
}

func TestSession_OpaqueTokenHasNoExpiry(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Save(context.Background(), domain.AuthResponse{User: alice, Token: "opaque-token"}))

	_, ok := s.ExpiresAt()
	assert.False(t, ok)
	assert.False(t, s.Expired())
	assert.True(t, s.Authenticated())
}

func TestSession_ExpiresAt(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New(nil)
	require.NoError(t, s.Save(context.Background(), domain.AuthResponse{User: alice, Token: signedToken(t, exp)}))

	got, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	s.now = func() time.Time { return exp.Add(time.Second) }
	assert.True(t, s.Expired())
	assert.False(t, s.Authenticated())
}

func TestSession_SaveRequiresToken(t *testing.T) {
	s := New(nil)
	assert.Error(t, s.Save(context.Background(), domain.AuthResponse{User: alice}))
	assert.Equal(t, "", s.Token())
}

func TestSession_SetUser(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	s := New(store)
	require.NoError(t, s.Save(ctx, domain.AuthResponse{User: alice, Token: "t"}))

	renamed := alice
	renamed.Username = "alice2"
	require.NoError(t, s.SetUser(ctx, renamed))

	restored := New(store)
	require.NoError(t, restored.Restore(ctx))
	user, _ := restored.User()
	assert.Equal(t, "alice2", user.Username)
}
