package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gamerack-go/config"
)

// failingBlacklist simulates an unavailable blacklist store.
type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string) error { return errors.New("store down") }
func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:            "secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
	}
}

// gatedServer wraps a handler that records the identity the middleware injected.
func gatedServer(cfg *config.AuthConfig, blacklist TokenBlacklist) (http.Handler, *int) {
	var seenUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := GetUserIDFromContext(r.Context()); ok {
			seenUserID = id
		}
		w.WriteHeader(http.StatusOK)
	})
	return JWTMiddleware(cfg, blacklist)(next), &seenUserID
}

func doRequest(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	h, _ := gatedServer(testAuthConfig(), NewMemoryBlacklist())
	rec := doRequest(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_BadHeaderFormat(t *testing.T) {
	h, _ := gatedServer(testAuthConfig(), NewMemoryBlacklist())
	rec := doRequest(h, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	h, _ := gatedServer(testAuthConfig(), NewMemoryBlacklist())
	rec := doRequest(h, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_ValidToken_InjectsIdentity(t *testing.T) {
	cfg := testAuthConfig()
	s := NewAuthService(nil, *cfg, NewMemoryBlacklist())
	access, _, err := s.issueTokens(42, "alice")
	require.NoError(t, err)

	h, seenUserID := gatedServer(cfg, NewMemoryBlacklist())
	rec := doRequest(h, "Bearer "+access)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, *seenUserID)
}

func TestJWTMiddleware_RefreshTokenRejected(t *testing.T) {
	cfg := testAuthConfig()
	s := NewAuthService(nil, *cfg, NewMemoryBlacklist())
	_, refresh, err := s.issueTokens(42, "alice")
	require.NoError(t, err)

	h, _ := gatedServer(cfg, NewMemoryBlacklist())
	rec := doRequest(h, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_RevokedTokenRejected(t *testing.T) {
	cfg := testAuthConfig()
	blacklist := NewMemoryBlacklist()
	s := NewAuthService(nil, *cfg, blacklist)
	access, _, err := s.issueTokens(42, "alice")
	require.NoError(t, err)

	h, _ := gatedServer(cfg, blacklist)

	// Valid before logout.
	rec := doRequest(h, "Bearer "+access)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, s.Logout(context.Background(), access))

	// Permanently rejected after, however many times it is presented.
	for i := 0; i < 3; i++ {
		rec = doRequest(h, "Bearer "+access)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestJWTMiddleware_BlacklistDown_FailsClosed(t *testing.T) {
	cfg := testAuthConfig()
	s := NewAuthService(nil, *cfg, NewMemoryBlacklist())
	access, _, err := s.issueTokens(42, "alice")
	require.NoError(t, err)

	h, _ := gatedServer(cfg, failingBlacklist{})
	rec := doRequest(h, "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_ExpiredTokenRejected(t *testing.T) {
	cfg := testAuthConfig()
	s := NewAuthService(nil, *cfg, NewMemoryBlacklist())
	expired, _, err := s.generateSpecificToken(42, "alice", tokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	h, _ := gatedServer(cfg, NewMemoryBlacklist())
	rec := doRequest(h, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
