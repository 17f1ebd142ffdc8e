package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/config"
)

func newTestService(secret string) *AuthService {
	return NewAuthService(nil, config.AuthConfig{
		JWTSecret:            secret,
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
	}, NewMemoryBlacklist())
}

func TestIssueTokens_RoundTrip(t *testing.T) {
	s := newTestService("secret")

	access, refresh, err := s.issueTokens(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := s.validateToken(access, tokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)

	claims, err = s.validateToken(refresh, tokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
}

func TestValidateToken_WrongType(t *testing.T) {
	s := newTestService("secret")

	_, refresh, err := s.issueTokens(1, "alice")
	require.NoError(t, err)

	// A refresh token must not validate as an access token.
	_, err = s.validateToken(refresh, tokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	s := newTestService("secret")
	other := newTestService("different-secret")

	access, _, err := s.issueTokens(1, "alice")
	require.NoError(t, err)

	_, err = other.validateToken(access, tokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestService("secret")

	token, _, err := s.generateSpecificToken(1, "alice", tokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = s.validateToken(token, tokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	s := newTestService("secret")

	_, err := s.validateToken("not.a.jwt", tokenTypeAccess)
	assert.Error(t, err)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	s := newTestService("secret")
	ctx := context.Background()

	_, refresh, err := s.issueTokens(7, "bob")
	require.NoError(t, err)

	resp, err := s.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Access)

	claims, err := s.validateToken(resp.Access, tokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	s := newTestService("secret")

	access, _, err := s.issueTokens(7, "bob")
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), access)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestRefresh_RejectsRevokedToken(t *testing.T) {
	s := newTestService("secret")
	ctx := context.Background()

	_, refresh, err := s.issueTokens(7, "bob")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, refresh))

	_, err = s.Refresh(ctx, refresh)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestLogout_IsIdempotent(t *testing.T) {
	s := newTestService("secret")
	ctx := context.Background()

	require.NoError(t, s.Logout(ctx, "any-token"))
	require.NoError(t, s.Logout(ctx, "any-token"))

	revoked, err := s.blacklist.IsRevoked(ctx, "any-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}
