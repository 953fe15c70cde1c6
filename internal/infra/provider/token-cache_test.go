package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe-api/internal/domain/dto"
)

func TestTokenCacheFetchesOnceWhileValid(t *testing.T) {
	cache := NewTokenCache()

	calls := 0
	fetch := func() (dto.TokenResponse, error) {
		calls++
		return dto.TokenResponse{AccessToken: "tok-1", ExpiresIn: 3600}, nil
	}

	for i := 0; i < 3; i++ {
		token, err := cache.Token(fetch)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	}

	assert.Equal(t, 1, calls)
}

func TestTokenCacheRefreshesAfterExpiry(t *testing.T) {
	now := time.Now()
	cache := NewTokenCache()
	cache.now = func() time.Time { return now }

	calls := 0
	fetch := func() (dto.TokenResponse, error) {
		calls++
		return dto.TokenResponse{AccessToken: "tok", ExpiresIn: 60}, nil
	}

	_, err := cache.Token(fetch)
	require.NoError(t, err)

	// Still inside the expiry window.
	now = now.Add(30 * time.Second)
	_, err = cache.Token(fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Past expiry.
	now = now.Add(31 * time.Second)
	_, err = cache.Token(fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTokenCachePropagatesFetchError(t *testing.T) {
	cache := NewTokenCache()

	_, err := cache.Token(func() (dto.TokenResponse, error) {
		return dto.TokenResponse{}, assert.AnError
	})
	assert.Error(t, err)
}
