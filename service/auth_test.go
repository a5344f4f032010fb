package service

import (
	"NoteShare/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterLoginLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, &types.RegisterRequest{Username: "nina", Email: "nina@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "nina", user.Username)
	assert.False(t, user.IsAdmin)

	_, _, err = f.auth.Login(ctx, &types.LoginRequest{Username: "nina", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, &types.LoginRequest{Username: "nobody", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	info, token, err := f.auth.Login(ctx, &types.LoginRequest{Username: "nina", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, info.ID)

	id, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "nina", id.Username)
	assert.False(t, id.IsAdmin)

	current, err := f.auth.CurrentUser(ctx, id.UserID)
	require.NoError(t, err)
	assert.Equal(t, "nina@example.com", current.Email)

	require.NoError(t, f.auth.Logout(ctx, id.SessionID))
	_, err = f.auth.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, &types.RegisterRequest{Username: "olga", Email: "olga@example.com", Password: "secret1"})
	require.NoError(t, err)

	cases := []struct {
		name string
		req  types.RegisterRequest
		want error
	}{
		{"missing email", types.RegisterRequest{Username: "p", Password: "secret1"}, ErrRegisterFields},
		{"short password", types.RegisterRequest{Username: "p", Email: "p@example.com", Password: "12345"}, ErrPasswordTooShort},
		{"duplicate username", types.RegisterRequest{Username: "olga", Email: "other@example.com", Password: "secret1"}, ErrUserExists},
		{"duplicate email", types.RegisterRequest{Username: "other", Email: "olga@example.com", Password: "secret1"}, ErrUserExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, &tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.auth.Authenticate(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.auth.Register(ctx, &types.RegisterRequest{Username: "quinn", Email: "q@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, token, err := f.auth.Login(ctx, &types.LoginRequest{Username: "quinn", Password: "secret1"})
	require.NoError(t, err)

	// 会话过期
	f.mr.FastForward(2 * f.conf.Session.TTL)
	_, err = f.auth.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.auth.EnsureAdmin(ctx, "root", "root@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.auth.EnsureAdmin(ctx, "root", "root@example.com", "changed-password")
	require.NoError(t, err)
	assert.False(t, created)

	info, _, err := f.auth.Login(ctx, &types.LoginRequest{Username: "root", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, info.IsAdmin)

	_, err = f.auth.EnsureAdmin(ctx, "root2", "r2@example.com", "123")
	require.Error(t, err)
}
