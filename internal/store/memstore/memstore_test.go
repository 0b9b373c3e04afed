package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissing(t *testing.T) {
	s := New()
	v, ok, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSetCopiesValue(t *testing.T) {
	s := New()
	buf := []byte(`{"a":1}`)
	require.NoError(t, s.Set("k", buf))
	buf[0] = 'X'

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(v))

	v[0] = 'Y'
	again, _, _ := s.Get("k")
	assert.Equal(t, `{"a":1}`, string(again), "returned slice must not alias stored value")
}
