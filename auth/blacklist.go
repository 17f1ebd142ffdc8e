package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/config"
)

// blacklistKeyPrefix namespaces blacklist entries in the shared Redis keyspace.
const blacklistKeyPrefix = "blacklist:"

// revokedMarker is the value stored for a revoked token.
const revokedMarker = "logged_out"

// TokenBlacklist records logged-out tokens so they are rejected on
// subsequent use. Revocation is a one-way, idempotent marker.
type TokenBlacklist interface {
	// Revoke marks a token as invalid. Revoking an already revoked token
	// has the same observable effect as revoking it once.
	Revoke(ctx context.Context, token string) error
	// IsRevoked reports whether a token has been revoked. A non-nil error
	// means the revocation state could not be determined; callers must
	// treat the token as unusable (fail closed).
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist is a TokenBlacklist backed by Redis, shared across
// processes and surviving restarts.
type RedisBlacklist struct {
	client *redis.Client
	// ttl of zero means entries never expire.
	ttl time.Duration
}

// NewRedisBlacklist connects to Redis and verifies the connection.
func NewRedisBlacklist(cfg *config.BlacklistConfig) (*RedisBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperror.NewConfigError("failed to connect to redis for token blacklist", err)
	}

	return &RedisBlacklist{client: client, ttl: cfg.TTL}, nil
}

// Revoke writes the revocation marker for the token.
func (b *RedisBlacklist) Revoke(ctx context.Context, token string) error {
	if err := b.client.Set(ctx, blacklistKeyPrefix+token, revokedMarker, b.ttl).Err(); err != nil {
		return apperror.NewInternalError("failed to revoke token", err)
	}
	return nil
}

// IsRevoked checks for the revocation marker.
func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := b.client.Get(ctx, blacklistKeyPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewInternalError("failed to check token revocation", err)
	}
	return true, nil
}

// Close releases the Redis connection.
func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}

// MemoryBlacklist is an in-process TokenBlacklist. It does not survive
// restarts and is intended for development and tests.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewMemoryBlacklist creates an empty in-process blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]struct{})}
}

// Revoke marks the token as revoked.
func (b *MemoryBlacklist) Revoke(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = struct{}{}
	return nil
}

// IsRevoked reports whether the token was revoked.
func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.revoked[token]
	return ok, nil
}

// NewBlacklist selects the blacklist backend from configuration: Redis when
// an address is configured, the in-process map otherwise.
func NewBlacklist(cfg *config.BlacklistConfig) (TokenBlacklist, error) {
	if cfg.RedisAddr == "" {
		return NewMemoryBlacklist(), nil
	}
	return NewRedisBlacklist(cfg)
}
