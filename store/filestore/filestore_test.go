package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/tryinvest/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s := New(dir)

	_, err := s.Load(ctx, store.PortfoliosKey)
	assert.ErrorIs(t, err, store.ErrNotFound, "first run")

	require.NoError(t, s.Save(ctx, store.PortfoliosKey, []byte(`{"PORTFOLIOS": []}`)))
	data, err := s.Load(ctx, store.PortfoliosKey)
	require.NoError(t, err)
	assert.Equal(t, `{"PORTFOLIOS": []}`, string(data))

	raw, err := os.ReadFile(filepath.Join(dir, "portfolios.json"))
	require.NoError(t, err)
	assert.Equal(t, data, raw)

	require.NoError(t, s.Save(ctx, store.PricesKey, []byte{}))
	data, err = s.Load(ctx, store.PricesKey)
	require.NoError(t, err)
	assert.NotNil(t, data, "empty is not missing")
	assert.Empty(t, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary file left")
}

func TestStore_InvalidKey(t *testing.T) {
	s := New(t.TempDir())
	assert.ErrorIs(t, s.Save(context.Background(), "../escape", nil), store.ErrInvalidKey)
	_, err := s.Load(context.Background(), "a/b")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}
