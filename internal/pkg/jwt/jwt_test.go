package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, ok := NewJWTService("test-secret", "240h", "1h").(*JWTService)
	require.True(t, ok)
	return svc
}

func TestJWTService_RevokeToken_BlocksUntilExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestJWTService_RevokeToken_ExpiredEntryNoLongerReported(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	svc.RevokeToken(token)
	require.True(t, svc.IsTokenRevoked(token))

	// Two hours later the one-hour refresh token has expired on its own.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.False(t, svc.IsTokenRevoked(token))
}

func TestJWTService_RevokeToken_EvictsExpiredEntriesOnWrite(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	refreshToken, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	svc.RevokeToken(refreshToken)
	require.Len(t, svc.revokedTokens, 1)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	accessToken, _, err := svc.GenerateAccessToken("user-1", "jane@acme.test", nil, nil, "owner")
	require.NoError(t, err)
	svc.RevokeToken(accessToken)

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	assert.Len(t, svc.revokedTokens, 1)
	_, stillTracked := svc.revokedTokens[refreshToken]
	assert.False(t, stillTracked)
}

func TestJWTService_RevokeToken_IgnoresAlreadyExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	svc.RevokeToken(token)

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	assert.Empty(t, svc.revokedTokens)
}
