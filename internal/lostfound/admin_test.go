package lostfound

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campuslf/lostfound/internal/model"
)

func TestEnsureAdminOnce(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	created, err = s.EnsureAdmin(ctx, "admin", "something-else")
	require.NoError(t, err)
	require.False(t, created)

	require.NoError(t, s.Authenticate(ctx, "admin", "admin123"))
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Authenticate(ctx, "admin", "admin123"), model.ErrAuth, "no admin yet")

	_, err := s.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, s.Authenticate(ctx, " admin ", "admin123"))
	require.ErrorIs(t, s.Authenticate(ctx, "admin", "wrong"), model.ErrAuth)
	require.ErrorIs(t, s.Authenticate(ctx, "root", "admin123"), model.ErrAuth)
	require.ErrorIs(t, s.Authenticate(ctx, "", ""), model.ErrAuth)
}

func TestChangePassword(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, s.ChangePassword(ctx, "admin123", "12345678", "12345678"))

	require.NoError(t, s.Authenticate(ctx, "admin", "12345678"))
	require.ErrorIs(t, s.Authenticate(ctx, "admin", "admin123"), model.ErrAuth)
}

func TestChangePasswordRejections(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)

	err = s.ChangePassword(ctx, "wrong", "new-password", "new-password")
	require.ErrorIs(t, err, model.ErrAuth)

	err = s.ChangePassword(ctx, "admin123", "short", "short")
	require.ErrorIs(t, err, model.ErrValidation)

	// Four characters, eight bytes.
	err = s.ChangePassword(ctx, "admin123", "éééé", "éééé")
	require.ErrorIs(t, err, model.ErrValidation)
	require.Equal(t, "New password must be at least 8 characters.", model.Message(err))

	err = s.ChangePassword(ctx, "admin123", "new-password", "new-passw0rd")
	require.ErrorIs(t, err, model.ErrValidation)
	require.Equal(t, "New password and confirm password do not match.", model.Message(err))

	// None of the rejected attempts changed the password.
	require.NoError(t, s.Authenticate(ctx, "admin", "admin123"))
	require.ErrorIs(t, s.Authenticate(ctx, "admin", "éééé"), model.ErrAuth)
}
