package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/etnz/tryinvest/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	s := NewFromClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	defer s.Close()
	assert.Equal(t, "tryinvest:prices", s.Key(store.PricesKey))

	s = NewFromClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "alice/")
	defer s.Close()
	assert.Equal(t, "alice/portfolios", s.Key(store.PortfoliosKey))
}

// TRYINVEST_TEST_REDIS_ADDR points to a scratch server, e.g. localhost:6379
func TestStore(t *testing.T) {
	addr := os.Getenv("TRYINVEST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRYINVEST_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := New(ctx, Config{Addr: addr, Prefix: "tryinvest-test:"})
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.rdb.Del(ctx, s.Key(store.PricesKey)).Err())

	_, err = s.Load(ctx, store.PricesKey)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Save(ctx, store.PricesKey, []byte(`{}`)))
	data, err := s.Load(ctx, store.PricesKey)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	require.NoError(t, s.Save(ctx, store.PricesKey, nil))
	data, err = s.Load(ctx, store.PricesKey)
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}
