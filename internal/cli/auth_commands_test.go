package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/errors"
)

func TestRegisterCommand_Execute(t *testing.T) {
	t.Run("creates the account and logs in", func(t *testing.T) {
		env := setupTestEnv(t)

		err := env.run("register", "alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Account created. Logged in as alice\n", env.out.String())

		user, ok := env.app.services.AuthService.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("surfaces the backend message", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)

		err := env.run("register", "alice", "other@example.com", "secret1")
		require.Error(t, err)
		assert.Equal(t, "User already exists", err.Error())
	})

	t.Run("rejects a short password before sending", func(t *testing.T) {
		env := setupTestEnv(t)

		err := env.run("register", "bob", "bob@example.com", "abc")
		require.Error(t, err)
		assert.Equal(t, "password must be at least 6 characters long", err.Error())
	})

	t.Run("requires username and email", func(t *testing.T) {
		env := setupTestEnv(t)

		err := env.run("register", "bob")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestLoginCommand_Execute(t *testing.T) {
	t.Run("logs in with a username", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)
		require.NoError(t, env.run("logout"))

		require.NoError(t, env.run("login", "alice", "secret1"))
		assert.Equal(t, "Logged in as alice\n", env.out.String())
	})

	t.Run("logs in with an email", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)
		require.NoError(t, env.run("logout"))

		require.NoError(t, env.run("login", "Alice@Example.com", "secret1"))
		assert.Contains(t, env.out.String(), "Logged in as alice")
	})

	t.Run("prompts for the password", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)
		require.NoError(t, env.run("logout"))

		env.app.SetIO(strings.NewReader("secret1\n"), env.out)
		require.NoError(t, env.run("login", "alice"))
		assert.Equal(t, "Password: Logged in as alice\n", env.out.String())
	})

	t.Run("uses the flag value", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)
		require.NoError(t, env.run("logout"))

		cmd := NewLoginCommand(env.app, "secret1")
		require.NoError(t, cmd.Execute(context.Background(), []string{"alice"}))
	})

	t.Run("wrong password shows the backend message", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)
		require.NoError(t, env.run("logout"))

		err := env.run("login", "alice", "wrong-password")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", err.Error())
		assert.True(t, NewErrorHandler().IsAuthenticationError(err))
	})

	t.Run("requires an identifier", func(t *testing.T) {
		env := setupTestEnv(t)

		err := env.run("login")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestLogoutCommand_Execute(t *testing.T) {
	env := setupTestEnv(t).loggedIn(t)

	require.NoError(t, env.run("logout"))
	assert.Equal(t, "Logged out\n", env.out.String())

	err := env.run("list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	// Logging out twice is harmless
	assert.NoError(t, env.run("logout"))
}

func TestWhoamiCommand_Execute(t *testing.T) {
	t.Run("prints the current user", func(t *testing.T) {
		env := setupTestEnv(t).loggedIn(t)

		require.NoError(t, env.run("whoami"))
		assert.Equal(t, "alice <alice@example.com>\n", env.out.String())
	})

	t.Run("fails when logged out", func(t *testing.T) {
		env := setupTestEnv(t)

		err := env.run("whoami")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not logged in")
	})
}
