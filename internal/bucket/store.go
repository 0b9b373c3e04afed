// Package bucket holds the bucket list state and its mutation operations.
//
// A Store owns one State value. Every mutation builds a new State, makes it
// current and writes the whole record to the Backend before returning.
// Stores are not safe for concurrent use; callers drive them from a single
// event loop.
package bucket

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/idilsaglam/bucket/internal/model"
)

// DefaultKey is the record key used when none is configured.
const DefaultKey = "utah-bucket-list"

// Backend is a process-local synchronous key-value store.
type Backend interface {
	// Get returns the value under key; ok is false when nothing is stored.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger
	now     func() time.Time

	state   model.State
	editing *model.EditState
	ready   bool
	lastID  int64
}

type Option func(*Store)

// WithKey overrides the record key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces the id clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		key:     DefaultKey,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		state:   model.NewState(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current state. Treat it as read-only.
func (s *Store) State() model.State { return s.state }

// Ready reports whether Load has completed.
func (s *Store) Ready() bool { return s.ready }

func (s *Store) Stats() model.Stats { return model.ComputeStats(s.state) }

// Editing returns the active edit, if any.
func (s *Store) Editing() (model.EditState, bool) {
	if s.editing == nil {
		return model.EditState{}, false
	}
	return *s.editing, true
}

// Load reads the persisted record. A missing, unreadable or corrupt record
// yields the default state; failures are logged and never returned.
func (s *Store) Load() model.State {
	defer func() { s.ready = true }()

	s.state = model.NewState()
	b, ok, err := s.backend.Get(s.key)
	switch {
	case err != nil:
		s.logger.Warn("load failed, using empty list", "key", s.key, "err", err)
	case !ok:
		s.logger.Debug("no saved list", "key", s.key)
	default:
		st, err := decode(b)
		if err != nil {
			s.logger.Warn("saved list is corrupt, using empty list", "key", s.key, "err", err)
			break
		}
		s.state = st
	}
	s.lastID = s.state.MaxID()
	return s.state
}

// Persist writes st under the record key.
func (s *Store) Persist(st model.State) error {
	b, err := json.Marshal(st.Normalize())
	if err != nil {
		return fmt.Errorf("%w: json marshal: %w", ErrPersist, err)
	}
	if err := s.backend.Set(s.key, b); err != nil {
		s.logger.Error("persist failed", "key", s.key, "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.logger.Debug("persisted", "key", s.key, "bytes", len(b))
	return nil
}

// AddItem appends a new uncompleted item to c.
func (s *Store) AddItem(c model.Category, name, link string) (model.State, error) {
	if err := s.check(c); err != nil {
		return s.state, err
	}
	if strings.TrimSpace(name) == "" {
		return s.state, ErrEmptyName
	}
	it := model.Item{ID: s.nextID(), Name: name, Link: link}
	items := make([]model.Item, 0, len(s.state[c])+1)
	items = append(items, s.state[c]...)
	items = append(items, it)
	return s.commit(s.state.With(c, items))
}

// DeleteItem removes id from c. Deleting a missing id rewrites the
// unchanged state.
func (s *Store) DeleteItem(c model.Category, id int64) (model.State, error) {
	if err := s.check(c); err != nil {
		return s.state, err
	}
	items := make([]model.Item, 0, len(s.state[c]))
	for _, it := range s.state[c] {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return s.commit(s.state.With(c, items))
}

// ToggleComplete flips the completion flag of id in c.
func (s *Store) ToggleComplete(c model.Category, id int64) (model.State, error) {
	if err := s.check(c); err != nil {
		return s.state, err
	}
	items := make([]model.Item, len(s.state[c]))
	for i, it := range s.state[c] {
		if it.ID == id {
			it.Completed = !it.Completed
		}
		items[i] = it
	}
	return s.commit(s.state.With(c, items))
}

// BeginEdit starts editing a working copy of it. Any previous edit is
// replaced.
func (s *Store) BeginEdit(c model.Category, it model.Item) {
	s.editing = &model.EditState{ID: it.ID, Category: c, Name: it.Name, Link: it.Link}
}

// CommitEdit writes e.Name and e.Link into the matching item, keeping its
// completion flag. An empty name leaves both state and edit untouched.
func (s *Store) CommitEdit(e model.EditState) (model.State, error) {
	if err := s.check(e.Category); err != nil {
		return s.state, err
	}
	if strings.TrimSpace(e.Name) == "" {
		return s.state, ErrEmptyName
	}
	items := make([]model.Item, len(s.state[e.Category]))
	for i, it := range s.state[e.Category] {
		if it.ID == e.ID {
			it = model.Item{ID: it.ID, Name: e.Name, Link: e.Link, Completed: it.Completed}
		}
		items[i] = it
	}
	s.editing = nil
	return s.commit(s.state.With(e.Category, items))
}

// CommitActiveEdit commits the edit started by BeginEdit with new fields.
func (s *Store) CommitActiveEdit(name, link string) (model.State, error) {
	e, ok := s.Editing()
	if !ok {
		return s.state, ErrNotEditing
	}
	e.Name, e.Link = name, link
	return s.CommitEdit(e)
}

func (s *Store) CancelEdit() { s.editing = nil }

func (s *Store) check(c model.Category) error {
	if !s.ready {
		return ErrNotReady
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return nil
}

// commit makes st current before persisting so a failed write does not
// lose the change in memory.
func (s *Store) commit(st model.State) (model.State, error) {
	s.state = st
	return st, s.Persist(st)
}

// nextID derives ids from the clock in milliseconds, bumped past the last
// issued or loaded id.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
