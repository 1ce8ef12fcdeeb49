package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/tryinvest/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(ctx, store.PortfoliosKey)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Save(ctx, store.PortfoliosKey, []byte(`{"v": 1}`)))
	require.NoError(t, s.Save(ctx, store.PortfoliosKey, []byte(`{"v": 2}`)))
	data, err := s.Load(ctx, store.PortfoliosKey)
	require.NoError(t, err)
	assert.Equal(t, `{"v": 2}`, string(data))

	require.NoError(t, s.Save(ctx, store.PricesKey, nil))
	data, err = s.Load(ctx, store.PricesKey)
	require.NoError(t, err)
	assert.NotNil(t, data, "empty is not missing")
	assert.Empty(t, data)

	assert.ErrorIs(t, s.Save(ctx, "bad key", nil), store.ErrInvalidKey)
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "tryinvest.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, store.PricesKey, []byte(`{}`)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	data, err := s.Load(ctx, store.PricesKey)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
