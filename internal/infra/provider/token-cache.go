package provider

import (
	"sync"
	"time"

	"scribe-api/internal/domain/dto"
)

// TokenCache holds a management-API token together with its expiry.
// It is passed into the provider instead of living as package state, and
// refresh only happens once the expiry comparison fails.
type TokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// Token returns the cached token, calling fetch for a fresh one when the
// cache is empty or expired. Concurrent callers share one refresh.
func (c *TokenCache) Token(fetch func() (dto.TokenResponse, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	resp, err := fetch()
	if err != nil {
		return "", err
	}

	c.token = resp.AccessToken
	c.expiresAt = c.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	return c.token, nil
}
