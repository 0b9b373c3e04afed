package bucket

import (
	"errors"

	"github.com/idilsaglam/bucket/internal/model"
)

var (
	// ErrEmptyName rejects adds and edit commits whose trimmed name is empty.
	ErrEmptyName = errors.New("name is empty")
	// ErrPersist wraps backend write failures. The in-memory state still
	// reflects the attempted change when it is returned.
	ErrPersist = errors.New("persist failed")
	// ErrNotReady is returned by mutations issued before Load.
	ErrNotReady = errors.New("store not loaded")
	// ErrNotEditing is returned by CommitActiveEdit when no edit is active.
	ErrNotEditing = errors.New("no item is being edited")

	ErrUnknownCategory = model.ErrUnknownCategory
)
