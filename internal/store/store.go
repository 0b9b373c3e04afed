// Package store opens the configured persistence backend.
package store

import (
	"fmt"

	"github.com/idilsaglam/bucket/internal/store/jsonstore"
	"github.com/idilsaglam/bucket/internal/store/memstore"
	"github.com/idilsaglam/bucket/internal/store/sqlitestore"
)

const (
	JSON   = "json"
	SQLite = "sqlite"
	Memory = "memory"
)

// Backends lists the accepted backend names.
var Backends = []string{JSON, SQLite, Memory}

// Backend is a key-value store that owns resources until closed.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}

// Open returns the backend named by kind over path. An empty path picks the
// backend's default file in the working directory.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case JSON, "":
		s, err := jsonstore.New(path)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return s, nil
	case SQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case Memory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend %q: must be json, sqlite, or memory", kind)
	}
}
