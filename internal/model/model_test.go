package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"restaurants": Restaurants,
		"Travel":      Travel,
		" sports ":    Sports,
		"rest":        Restaurants,
		"r":           Restaurants,
		"tr":          Travel,
		"sp":          Sports,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "museums", "restaurantsx"} {
		_, err := ParseCategory(in)
		require.ErrorIs(t, err, ErrUnknownCategory, in)
	}
}

func TestNewStateHasEveryCategory(t *testing.T) {
	s := NewState()
	require.Len(t, s, 3)
	for _, c := range Categories {
		assert.NotNil(t, s[c], c)
		assert.Empty(t, s[c], c)
	}
}

func TestNormalizeDropsUnknownAndFillsMissing(t *testing.T) {
	in := State{
		Travel:             {{ID: 1, Name: "Zion"}},
		Category("museum"): {{ID: 2, Name: "MOA"}},
	}
	got := in.Normalize()
	want := NewState()
	want[Travel] = []Item{{ID: 1, Name: "Zion"}}
	assert.Empty(t, cmp.Diff(want, got))

	got[Travel][0].Name = "changed"
	assert.Equal(t, "Zion", in[Travel][0].Name, "normalize copies items")
}

func TestWithLeavesOriginal(t *testing.T) {
	s := NewState()
	next := s.With(Sports, []Item{{ID: 3, Name: "Jazz"}})
	assert.Empty(t, s[Sports])
	assert.Len(t, next[Sports], 1)

	cleared := next.With(Sports, nil)
	assert.NotNil(t, cleared[Sports])
	assert.Empty(t, cleared[Sports])
}

func TestFindAndMaxID(t *testing.T) {
	s := NewState().
		With(Travel, []Item{{ID: 10, Name: "a"}, {ID: 42, Name: "b"}}).
		With(Sports, []Item{{ID: 7, Name: "c"}})

	it, ok := s.Find(Travel, 42)
	require.True(t, ok)
	assert.Equal(t, "b", it.Name)
	_, ok = s.Find(Sports, 42)
	assert.False(t, ok)
	assert.Equal(t, int64(42), s.MaxID())
	assert.Zero(t, NewState().MaxID())
}

func TestComputeStats(t *testing.T) {
	s := NewState().
		With(Restaurants, []Item{{ID: 1, Completed: true}, {ID: 2}}).
		With(Travel, []Item{{ID: 3}})

	st := ComputeStats(s)
	assert.Equal(t, Count{Completed: 1, Total: 2}, st.ByCategory[Restaurants])
	assert.Equal(t, Count{Completed: 0, Total: 1}, st.ByCategory[Travel])
	assert.Equal(t, Count{}, st.ByCategory[Sports])
	assert.Equal(t, Count{Completed: 1, Total: 3}, st.Overall)
	assert.Equal(t, 2, st.Overall.Pending())
}
