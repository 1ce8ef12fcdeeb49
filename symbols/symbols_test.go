package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Greater(t, d.Len(), 50)
	assert.True(t, d.Has("DIS"))
	assert.True(t, d.Has(" aapl "))
	assert.False(t, d.Has("NOPE"))
	assert.Equal(t, "The Walt Disney Company", d.Name("dis"))
	assert.Equal(t, "", d.Name("NOPE"))
}

func TestSearch(t *testing.T) {
	d := Default()
	tests := []struct {
		prefix string
		n      int
		want   []string
	}{
		{"GOO", 0, []string{"GOOG", "GOOGL"}},
		{"goo", 1, []string{"GOOG"}},
		{"M", 3, []string{"MA", "MCD", "META"}},
		{"ZZ", 0, nil},
		{"BRK", 5, []string{"BRK.B"}},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			var got []string
			for _, s := range d.Search(tt.prefix, tt.n) {
				got = append(got, s.Symbol)
			}
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Len(t, d.Search("", 0), d.Len())
	assert.Equal(t, "Alphabet Inc. Class C", d.Search("GOOG", 1)[0].Name)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"acme": {"NAME": "Acme Corp."}, "DIS": {"NAME": "Disney"}}`), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.True(t, d.Has("ACME"))
	assert.Equal(t, "Disney", d.Name("DIS"))
	assert.Equal(t, Default().Len()+1, d.Len())
	assert.Equal(t, []string{"ACME"}, []string{d.Search("AC", 0)[0].Symbol})
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`["AAPL"]`), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode([]byte(`{" ": {"NAME": "blank"}}`))
	assert.ErrorIs(t, err, ErrCorrupt)
}
