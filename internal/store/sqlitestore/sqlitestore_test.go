package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bucket.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestGetMissing(t *testing.T) {
	s, _ := openTemp(t)
	v, ok, err := s.Get("utah-bucket-list")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestUpsert(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.Set("k", []byte(`{"travel":[]}`)))
	require.NoError(t, s.Set("k", []byte(`{"sports":[]}`)))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"sports":[]}`, string(v))

	var n int
	require.NoError(t, s.db.Get(&n, `SELECT COUNT(*) FROM kv`))
	assert.Equal(t, 1, n)
}

func TestReopenKeepsData(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Set("k", []byte(`[1]`)))
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	v, ok, err := again.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(v))
}
