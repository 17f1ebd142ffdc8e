package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "gamerack")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "gamerack")
	t.Setenv("JWT_SECRET", "testsecret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenDuration)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "", cfg.Blacklist.RedisAddr)
	assert.Equal(t, time.Duration(0), cfg.Blacklist.TTL)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "gamerack")
	t.Setenv("DB_PASSWORD", "secret")
	// DB_NAME and JWT_SECRET deliberately unset.

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_ACCESS_TOKEN_DURATION", "5m")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("BLACKLIST_TTL", "720h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, "redis:6379", cfg.Blacklist.RedisAddr)
	assert.Equal(t, 720*time.Hour, cfg.Blacklist.TTL)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TOKEN_DURATION", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_TOKEN_DURATION")
}

func TestLoadConfig_PoolSizeClamped(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_POOL_SIZE", "2")

	// Clamping is reported as a configuration error.
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_SIZE")
}
