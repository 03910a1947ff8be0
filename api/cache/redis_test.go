package cache

import (
	"context"
	"testing"
	"time"

	"Litreview/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutEndpointDisablesRedis(t *testing.T) {
	require.NoError(t, Init(&config.RedisConfig{}))
	assert.Nil(t, Client)
}

func TestInitRejectsBadURL(t *testing.T) {
	err := Init(&config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
	assert.Nil(t, Client)
}

func TestInitUnreachable(t *testing.T) {
	err := Init(&config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, Client)
}

func TestRevocationsNoopWithoutClient(t *testing.T) {
	Client = nil
	r := Revocations{}
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "abc", time.Hour))
	revoked, err := r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, Close())
}
