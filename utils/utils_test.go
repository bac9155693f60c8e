package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, err := GenerateToken("hr-01", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "hr-01", claims.Subject)
	assert.True(t, claims.IsAdmin())
}

func TestVerifyTokenRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, err := GenerateToken("u", RoleEditor, 0)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = VerifyToken(tok)
	assert.Error(t, err)

	_, err = VerifyToken("not-a-jwt")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "")
	_, err = VerifyToken(tok)
	assert.ErrorIs(t, err, ErrNoSecret)
	_, err = GenerateToken("u", RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestEditToken(t *testing.T) {
	tok, hash, err := IssueEditToken()
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.NotEqual(t, tok, hash)

	assert.True(t, VerifyEditToken(hash, tok))
	assert.False(t, VerifyEditToken(hash, tok+"x"))
	assert.False(t, VerifyEditToken("", tok))
	assert.False(t, VerifyEditToken(hash, ""))

	_, err = HashEditToken("")
	assert.Error(t, err)
}
