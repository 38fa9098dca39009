package accounts

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/films/internal/shared"
)

var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, shared.RunMigrations(db))
	t.Cleanup(func() { db.Close() })

	svc, err := NewService(db, testParams, shared.NewLogger(io.Discard))
	require.NoError(t, err)
	return svc
}

func TestPasswordHashing(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := HashPassword("correct horse", testParams)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

		ok, err := VerifyPassword("correct horse", hash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyPassword("wrong horse", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("salted", func(t *testing.T) {
		a, err := HashPassword("same password", testParams)
		require.NoError(t, err)
		b, err := HashPassword("same password", testParams)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("malformed hashes", func(t *testing.T) {
		for _, encoded := range []string{
			"",
			"plain",
			"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
			"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
			"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
			"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		} {
			_, err := VerifyPassword("password", encoded)
			assert.ErrorIs(t, err, errMalformedHash, "hash %q", encoded)
		}
	})
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("Register & Authenticate", func(t *testing.T) {
		svc := setupService(t)

		user, err := svc.Register(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID())
		assert.NotContains(t, user.PasswordHash(), "password123")

		got, err := svc.Authenticate(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, user.ID(), got.ID())

		byID, err := svc.Get(ctx, user.ID())
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username())
	})

	t.Run("Authenticate failures", func(t *testing.T) {
		svc := setupService(t)
		_, err := svc.Register(ctx, "alice", "password123")
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("Register validation", func(t *testing.T) {
		svc := setupService(t)

		tc := []struct {
			name     string
			username string
			password string
		}{
			{name: "empty username", username: "", password: "password123"},
			{name: "username with space", username: "al ice", password: "password123"},
			{name: "username too long", username: strings.Repeat("a", 151), password: "password123"},
			{name: "short password", username: "alice", password: "short"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.username, tt.password)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			})
		}
	})

	t.Run("Register duplicate", func(t *testing.T) {
		svc := setupService(t)
		_, err := svc.Register(ctx, "alice", "password123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "password456")
		assert.ErrorIs(t, err, shared.ErrUsernameTaken)
	})

	t.Run("Available", func(t *testing.T) {
		svc := setupService(t)

		ok, err := svc.Available(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = svc.Register(ctx, "alice", "password123")
		require.NoError(t, err)

		ok, err = svc.Available(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ChangePassword", func(t *testing.T) {
		svc := setupService(t)
		_, err := svc.Register(ctx, "alice", "password123")
		require.NoError(t, err)

		require.NoError(t, svc.ChangePassword(ctx, "alice", "new-password"))

		_, err = svc.Authenticate(ctx, "alice", "password123")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
		_, err = svc.Authenticate(ctx, "alice", "new-password")
		assert.NoError(t, err)

		assert.ErrorIs(t, svc.ChangePassword(ctx, "alice", "short"), shared.ErrInvalidInput)
		assert.ErrorIs(t, svc.ChangePassword(ctx, "nobody", "new-password"), shared.ErrUserNotFound)
	})

	t.Run("Delete & List", func(t *testing.T) {
		svc := setupService(t)
		_, err := svc.Register(ctx, "alice", "password123")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "bob", "password123")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "alice"))

		users, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Username())

		_, err = svc.Lookup(ctx, "alice")
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})
}
