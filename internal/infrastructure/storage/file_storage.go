package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/fsnotify/fsnotify"
)

const (
	fileExt       = ".json"
	debounceDelay = 350 * time.Millisecond
)

// FileStorage stores each key as <dir>/<key>.json.
type FileStorage struct {
	mu      sync.RWMutex
	dir     string
	watcher *fsnotify.Watcher
}

// NewFileStorage creates the directory if needed and returns a storage rooted at it.
func NewFileStorage(dir string) (*FileStorage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: abs}, nil
}

// Dir returns the absolute storage directory.
func (s *FileStorage) Dir() string { return s.dir }

func (s *FileStorage) path(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

// Get reads the file for key. A missing file reports ok=false without error.
func (s *FileStorage) Get(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Set writes value through a temporary file and renames it into place.
func (s *FileStorage) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Watch sets a fsnotify watcher on the storage directory and calls onChange,
// debounced, with the key of every modified file.
func (s *FileStorage) Watch(onChange func(key string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(s.dir); err != nil {
		_ = w.Close()
		return err
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	go func() {
		var (
			pendingMu sync.Mutex
			pending   = map[string]struct{}{}
			timer     *time.Timer
		)
		fire := func() {
			pendingMu.Lock()
			keys := make([]string, 0, len(pending))
			for k := range pending {
				keys = append(keys, k)
			}
			pending = map[string]struct{}{}
			pendingMu.Unlock()

			for _, k := range keys {
				utils.Logger.Debug("storage file changed", "key", k)
				onChange(k)
			}
		}

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				key, ok := s.keyFromPath(ev.Name)
				if !ok {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				pendingMu.Lock()
				pending[key] = struct{}{}
				pendingMu.Unlock()
				if timer == nil {
					timer = time.AfterFunc(debounceDelay, fire)
				} else {
					timer.Reset(debounceDelay)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				utils.Logger.Warn("fsnotify error", "err", err)
			}
		}
	}()
	return nil
}

func (s *FileStorage) keyFromPath(name string) (string, bool) {
	if filepath.Dir(name) != s.dir {
		return "", false
	}
	base := filepath.Base(name)
	if !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	return strings.TrimSuffix(base, fileExt), true
}

// Close stops the watcher, if any.
func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
