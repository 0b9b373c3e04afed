package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFile(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSetGetKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bucket.json")
	s, err := New(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("a", []byte(`{"travel":[]}`)))
	require.NoError(t, s.Set("b", []byte(`[1,2]`)))
	require.NoError(t, s.Set("a", []byte(`{"sports":[]}`)))

	a, ok, err := s.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"sports":[]}`, string(a))

	b, ok, err := s.Get("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(b))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"sports":[]},"b":[1,2]}`, string(raw))
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "bucket.json"))
	require.NoError(t, err)
	require.Error(t, s.Set("k", []byte("{oops")))
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bucket.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	s, err := New(path)
	require.NoError(t, err)

	_, _, err = s.Get("k")
	require.Error(t, err)
	require.Error(t, s.Set("k", []byte(`1`)), "corrupt file is not overwritten blindly")
}

func TestEmptyFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bucket.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	s, err := New(path)
	require.NoError(t, err)

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultPath(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, filepath.Base(s.Path()))
}
