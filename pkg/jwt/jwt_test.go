package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(secret, "42", 7, true, TypeSession, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TypeSession, token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.SessionID)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, "1", 1, false, TypeSession, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TypeSession, token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(secret, "1", 1, false, TypeSession, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeSession, token)
	require.Error(t, err)
}

func TestParseToken_WrongType(t *testing.T) {
	token, err := GenerateToken(secret, "1", 1, false, "refresh", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeSession, token)
	require.ErrorIs(t, err, ErrTokenType)
}
