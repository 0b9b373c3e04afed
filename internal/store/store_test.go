package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEachBackend(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range Backends {
		t.Run(kind, func(t *testing.T) {
			b, err := Open(kind, filepath.Join(dir, "data."+kind))
			require.NoError(t, err)
			defer b.Close()

			require.NoError(t, b.Set("k", []byte(`{"x":1}`)))
			v, ok, err := b.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"x":1}`, string(v))
		})
	}
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("redis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
