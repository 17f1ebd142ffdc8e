package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gamerack-go/config"
)

func TestMemoryBlacklist_RevokeAndCheck(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()

	revoked, err := b.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "some-token"))

	revoked, err = b.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryBlacklist_RevokeIsIdempotent(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "tok"))
	require.NoError(t, b.Revoke(ctx, "tok"))

	revoked, err := b.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryBlacklist_PermanentWithinProcess(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "tok"))
	// There is no removal operation; the entry stays.
	for i := 0; i < 3; i++ {
		revoked, err := b.IsRevoked(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}

func TestNewBlacklist_SelectsMemoryWithoutRedisAddr(t *testing.T) {
	b, err := NewBlacklist(&config.BlacklistConfig{RedisAddr: ""})
	require.NoError(t, err)
	_, ok := b.(*MemoryBlacklist)
	assert.True(t, ok)
}
