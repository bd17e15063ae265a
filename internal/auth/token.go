package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ayush/task-tracker/internal/models"
)

const (
	// TokenTTL is how long an issued bearer token stays valid.
	TokenTTL = time.Hour
	// reissueWindow: a token with less than this left on the clock is
	// replaced instead of reused.
	reissueWindow = time.Minute

	tokenBytes = 16
)

// Token is the response body for GET /token.
type Token struct {
	Value      string    `json:"token"`
	Expiration time.Time `json:"tokenExpiration"`
}

// TokenStore persists issued tokens.
type TokenStore interface {
	SaveToken(ctx context.Context, userID, token string, expiration time.Time) error
}

// Issuer issues and reuses opaque bearer tokens. Two concurrent requests for
// the same user may both reissue; last write wins.
type Issuer struct {
	store TokenStore
	cache *TokenCache
	now   func() time.Time
}

func NewIssuer(store TokenStore, cache *TokenCache) *Issuer {
	return &Issuer{store: store, cache: cache, now: time.Now}
}

// GetOrIssue returns the user's current token when it still has more than a
// minute of validity, otherwise generates a fresh one: 16 random bytes,
// hex-encoded, valid for one hour.
func (i *Issuer) GetOrIssue(ctx context.Context, user *models.User) (Token, error) {
	now := i.now()
	if user.Token != nil && user.TokenExpiration != nil && user.TokenExpiration.After(now.Add(reissueWindow)) {
		return Token{Value: *user.Token, Expiration: *user.TokenExpiration}, nil
	}

	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return Token{}, fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiration := now.Add(TokenTTL)

	if err := i.store.SaveToken(ctx, user.ID, token, expiration); err != nil {
		return Token{}, err
	}
	if i.cache != nil {
		if user.Token != nil {
			i.cache.Invalidate(ctx, *user.Token)
		}
		i.cache.Put(ctx, token, user.ID, expiration)
	}

	user.Token = &token
	user.TokenExpiration = &expiration
	return Token{Value: token, Expiration: expiration}, nil
}
