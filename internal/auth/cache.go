package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache maps bearer tokens to user ids in Redis so token verification
// can skip Postgres on the hot path. Entries expire no later than the token
// itself, so a cache hit always means an unexpired token. Postgres remains
// the source of truth; every method is best-effort.
type TokenCache struct {
	rdb *redis.Client
}

func NewTokenCache(rdb *redis.Client) *TokenCache {
	return &TokenCache{rdb: rdb}
}

// Get returns the user id holding the token, or "" on a miss.
func (c *TokenCache) Get(ctx context.Context, token string) (string, error) {
	val, err := c.rdb.Get(ctx, "token:"+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Put stores the token until its expiration. Tokens already at or past
// expiry are not cached.
func (c *TokenCache) Put(ctx context.Context, token, userID string, expiration time.Time) error {
	ttl := time.Until(expiration)
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, "token:"+token, userID, ttl).Err()
}

// Invalidate drops a token, used on reissue and user deletion.
func (c *TokenCache) Invalidate(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, "token:"+token).Err()
}
