package auth

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/ayush/task-tracker/internal/models"
)

type fakeTokenStore struct {
	saves int
}

func (f *fakeTokenStore) SaveToken(ctx context.Context, userID, token string, expiration time.Time) error {
	f.saves++
	return nil
}

func testIssuer(fs *fakeTokenStore, now time.Time) *Issuer {
	i := NewIssuer(fs, nil)
	i.now = func() time.Time { return now }
	return i
}

func TestGetOrIssueFresh(t *testing.T) {
	fs := &fakeTokenStore{}
	now := time.Now()
	i := testIssuer(fs, now)
	user := &models.User{ID: "u1"}

	tok, err := i.GetOrIssue(context.Background(), user)
	if err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if len(tok.Value) != 32 {
		t.Errorf("token length = %d, want 32", len(tok.Value))
	}
	if _, err := hex.DecodeString(tok.Value); err != nil {
		t.Errorf("token %q is not hex: %v", tok.Value, err)
	}
	if !tok.Expiration.Equal(now.Add(time.Hour)) {
		t.Errorf("expiration = %v, want %v", tok.Expiration, now.Add(time.Hour))
	}
	if fs.saves != 1 {
		t.Errorf("saves = %d, want 1", fs.saves)
	}
	if user.Token == nil || *user.Token != tok.Value {
		t.Error("issued token not written back to the user")
	}
}

func TestGetOrIssueReusesValidToken(t *testing.T) {
	fs := &fakeTokenStore{}
	now := time.Now()
	i := testIssuer(fs, now)

	existing := "aabbccddeeff00112233445566778899"
	exp := now.Add(30 * time.Minute)
	user := &models.User{ID: "u1", Token: &existing, TokenExpiration: &exp}

	tok, err := i.GetOrIssue(context.Background(), user)
	if err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if tok.Value != existing {
		t.Errorf("token = %q, want reused %q", tok.Value, existing)
	}
	if !tok.Expiration.Equal(exp) {
		t.Errorf("expiration = %v, want unchanged %v", tok.Expiration, exp)
	}
	if fs.saves != 0 {
		t.Errorf("saves = %d, want 0 on reuse", fs.saves)
	}
}

func TestGetOrIssueReplacesNearExpiry(t *testing.T) {
	fs := &fakeTokenStore{}
	now := time.Now()
	i := testIssuer(fs, now)

	existing := "aabbccddeeff00112233445566778899"
	exp := now.Add(30 * time.Second) // inside the one-minute reissue window
	user := &models.User{ID: "u1", Token: &existing, TokenExpiration: &exp}

	tok, err := i.GetOrIssue(context.Background(), user)
	if err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if tok.Value == existing {
		t.Error("near-expiry token was reused, want a fresh one")
	}
	if fs.saves != 1 {
		t.Errorf("saves = %d, want 1", fs.saves)
	}
}

func TestGetOrIssuePopulatesCache(t *testing.T) {
	cache, _ := testCache(t)
	fs := &fakeTokenStore{}
	i := NewIssuer(fs, cache)
	user := &models.User{ID: "u1"}

	tok, err := i.GetOrIssue(context.Background(), user)
	if err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if got, _ := cache.Get(context.Background(), tok.Value); got != "u1" {
		t.Errorf("cache.Get(new token) = %q, want u1", got)
	}
}

func TestGetOrIssueInvalidatesReplacedToken(t *testing.T) {
	cache, _ := testCache(t)
	fs := &fakeTokenStore{}
	i := NewIssuer(fs, cache)

	old := "aabbccddeeff00112233445566778899"
	exp := time.Now().Add(30 * time.Second) // inside the reissue window
	user := &models.User{ID: "u1", Token: &old, TokenExpiration: &exp}
	if err := cache.Put(context.Background(), old, "u1", exp); err != nil {
		t.Fatalf("Put: %v", err)
	}

	tok, err := i.GetOrIssue(context.Background(), user)
	if err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if tok.Value == old {
		t.Fatal("near-expiry token was reused, want a fresh one")
	}
	if got, _ := cache.Get(context.Background(), old); got != "" {
		t.Errorf("replaced token still cached: Get = %q, want miss", got)
	}
	if got, _ := cache.Get(context.Background(), tok.Value); got != "u1" {
		t.Errorf("cache.Get(new token) = %q, want u1", got)
	}
}

func TestGetOrIssueReuseLeavesCacheAlone(t *testing.T) {
	cache, _ := testCache(t)
	fs := &fakeTokenStore{}
	i := NewIssuer(fs, cache)

	existing := "aabbccddeeff00112233445566778899"
	exp := time.Now().Add(30 * time.Minute)
	user := &models.User{ID: "u1", Token: &existing, TokenExpiration: &exp}
	if err := cache.Put(context.Background(), existing, "u1", exp); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, err := i.GetOrIssue(context.Background(), user); err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if got, _ := cache.Get(context.Background(), existing); got != "u1" {
		t.Errorf("reused token evicted from cache: Get = %q, want u1", got)
	}
}

func TestGetOrIssueReplacesExpiredToken(t *testing.T) {
	fs := &fakeTokenStore{}
	now := time.Now()
	i := testIssuer(fs, now)

	existing := "aabbccddeeff00112233445566778899"
	exp := now.Add(-time.Minute)
	user := &models.User{ID: "u1", Token: &existing, TokenExpiration: &exp}

	tok, err := i.GetOrIssue(context.Background(), user)
	if err != nil {
		t.Fatalf("GetOrIssue: %v", err)
	}
	if tok.Value == existing {
		t.Error("expired token was reused, want a fresh one")
	}
	if !tok.Expiration.After(now) {
		t.Errorf("new expiration %v is not in the future", tok.Expiration)
	}
}
