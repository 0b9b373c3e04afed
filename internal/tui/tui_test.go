package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bucket/internal/bucket"
	"github.com/idilsaglam/bucket/internal/model"
	"github.com/idilsaglam/bucket/internal/store/memstore"
)

type brokenBackend struct{ *memstore.Store }

func (brokenBackend) Set(string, []byte) error { return errors.New("disk full") }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	wipe  = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func started(t *testing.T, b bucket.Backend) (Model, *bucket.Store) {
	t.Helper()
	s := bucket.New(b)
	m := New(s, nil)
	require.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading")

	// mutations are ignored until the load message arrives
	m = send(t, m, runes("a"))
	assert.Equal(t, browsing, m.mode)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, m.Init()())
	require.False(t, m.Loading())
	return m, s
}

func TestAddFromForm(t *testing.T) {
	m, s := started(t, memstore.New())

	m = send(t, m, runes("a"), runes("Red Iguana"), tab, runes("https://maps.example/iguana"), enter)

	assert.Equal(t, browsing, m.mode)
	items := s.State()[model.Restaurants]
	require.Len(t, items, 1)
	assert.Equal(t, "Red Iguana", items[0].Name)
	assert.Equal(t, "https://maps.example/iguana", items[0].Link)
	assert.Contains(t, m.View(), "Red Iguana")
	assert.Contains(t, m.View(), "Restaurants 0/1")
}

func TestAddEmptyNameKeepsForm(t *testing.T) {
	m, s := started(t, memstore.New())
	m = send(t, m, runes("a"), runes("   "), enter)
	assert.Equal(t, adding, m.mode)
	assert.Equal(t, "Name cannot be empty", m.FormError())
	assert.Empty(t, s.State()[model.Restaurants])

	m = send(t, m, esc)
	assert.Equal(t, browsing, m.mode)
}

func TestTabSwitchesCategory(t *testing.T) {
	m, s := started(t, memstore.New())
	m = send(t, m, tab)
	assert.Equal(t, model.Travel, m.Category())

	m = send(t, m, runes("a"), runes("Zion National Park"), enter)
	require.Len(t, s.State()[model.Travel], 1)
	assert.Empty(t, s.State()[model.Restaurants])

	m = send(t, m, tab, tab)
	assert.Equal(t, model.Restaurants, m.Category())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.Sports, m.Category())
}

func TestToggleAndDelete(t *testing.T) {
	m, s := started(t, memstore.New())
	m = send(t, m, runes("a"), runes("one"), enter, runes("a"), runes("two"), enter)
	require.Len(t, s.State()[model.Restaurants], 2)

	m = send(t, m, space)
	assert.True(t, s.State()[model.Restaurants][0].Completed)
	assert.Equal(t, model.Count{Completed: 1, Total: 2}, s.Stats().ByCategory[model.Restaurants])

	m = send(t, m, runes("d"))
	items := s.State()[model.Restaurants]
	require.Len(t, items, 1)
	assert.Equal(t, "two", items[0].Name)
	assert.Contains(t, m.View(), "two")
}

func TestEditKeepsCompletion(t *testing.T) {
	m, s := started(t, memstore.New())
	m = send(t, m, runes("a"), runes("A"), enter, space)

	m = send(t, m, runes("e"))
	require.Equal(t, editing, m.mode)
	_, ok := s.Editing()
	require.True(t, ok)

	m = send(t, m, wipe, runes("B"), enter)
	assert.Equal(t, browsing, m.mode)
	it := s.State()[model.Restaurants][0]
	assert.Equal(t, "B", it.Name)
	assert.True(t, it.Completed)
	_, ok = s.Editing()
	assert.False(t, ok)
}

func TestEmptyEditIsRejected(t *testing.T) {
	m, s := started(t, memstore.New())
	m = send(t, m, runes("a"), runes("A"), enter)
	before := s.State()

	m = send(t, m, runes("e"), wipe, enter)
	assert.Equal(t, editing, m.mode)
	assert.Equal(t, "Name cannot be empty", m.FormError())
	assert.Equal(t, before, s.State())
	_, ok := s.Editing()
	assert.True(t, ok, "edit stays active")

	m = send(t, m, esc)
	_, ok = s.Editing()
	assert.False(t, ok)
	assert.Equal(t, browsing, m.mode)
}

func TestPersistFailureIsShownOnce(t *testing.T) {
	m, s := started(t, brokenBackend{memstore.New()})
	m = send(t, m, runes("a"), runes("Moab"), enter)

	assert.Contains(t, m.Status(), "Could not save")
	assert.Contains(t, m.View(), "Could not save")
	require.Len(t, s.State()[model.Restaurants], 1, "in-memory change is kept")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.Status())
}
