// Package storage implements the key-value persistence surface used by the tab store.
// Three backends are available: a directory of JSON files watched with fsnotify,
// a SQLite table accessed through gorm, and an in-memory map.
package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/OliveiraNt/tabsmith/internal/config"
	"github.com/OliveiraNt/tabsmith/internal/domain"
)

// Backend is a closable persistence surface.
type Backend interface {
	domain.Storage
	io.Closer
}

// Watcher is implemented by backends that can report external modifications.
type Watcher interface {
	Watch(onChange func(key string)) error
}

// Open creates the backend selected by cfg.Driver.
func Open(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return NewFileStorage(cfg.Dir)
	case config.DriverSQLite:
		return NewSQLiteStorage(cfg.SQLitePath)
	case config.DriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
