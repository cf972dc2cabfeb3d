package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.GenerateAccessToken("64f0c1a2b3d4e5f601234567", "alice")
	require.NoError(t, err)

	claims, err := tm.ValidAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "64f0c1a2b3d4e5f601234567", claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	tm := newTestTokenManager()

	refresh, err := tm.GenerateRefreshToken("64f0c1a2b3d4e5f601234567")
	require.NoError(t, err)

	// signed with the refresh secret, must fail access validation
	_, err = tm.ValidAccessToken(refresh)
	require.Error(t, err)

	claims, err := tm.ValidRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "64f0c1a2b3d4e5f601234567", claims.UserID)
}

func TestExpiredToken(t *testing.T) {
	tm := NewTokenManager("a", "r", -time.Minute, -time.Minute)

	token, err := tm.GenerateAccessToken("id", "bob")
	require.NoError(t, err)

	_, err = tm.ValidAccessToken(token)
	require.Error(t, err)
}
