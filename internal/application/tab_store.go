// Package application holds the tab store and the builder service that the
// user interface and the command line drive.
package application

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/OliveiraNt/tabsmith/internal/metrics"
	"github.com/OliveiraNt/tabsmith/internal/utils"
)

// DefaultDebounce is the delay used to coalesce persistence writes.
const DefaultDebounce = 200 * time.Millisecond

const maxIDAttempts = 8

// StoreOption configures a TabStore.
type StoreOption func(*TabStore)

// WithDebounce sets the persistence debounce window.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *TabStore) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithIDGenerator replaces the tab id generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *TabStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithMetrics records store operations on m.
func WithMetrics(m *metrics.Metrics) StoreOption {
	return func(s *TabStore) { s.metrics = m }
}

// TabStore owns the ordered tab collection and the active tab pointer.
// Every operation is applied atomically; invalid requests are no-ops.
// Changes are written to storage, debounced, once Load has run.
type TabStore struct {
	mu       sync.Mutex
	tabs     []domain.Tab
	activeID string
	ready    bool
	pending  bool
	timer    *time.Timer

	// writeMu serializes writes; lastWritten is guarded by it.
	writeMu     sync.Mutex
	lastWritten string

	subMu    sync.Mutex
	subs     map[int]func(domain.Snapshot)
	nextSub  int
	notifyMu sync.Mutex

	storage  domain.Storage
	debounce time.Duration
	newID    func() string
	metrics  *metrics.Metrics
}

// NewTabStore creates a store seeded with one default tab.
func NewTabStore(storage domain.Storage, opts ...StoreOption) *TabStore {
	s := &TabStore{
		storage:  storage,
		debounce: DefaultDebounce,
		newID:    utils.NewTabID,
		subs:     make(map[int]func(domain.Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	first := domain.Tab{ID: s.newID(), Title: domain.DefaultTitle(1)}
	s.tabs = []domain.Tab{first}
	s.activeID = first.ID
	s.metrics.SetTabs(len(s.tabs))
	return s
}

// Load restores the persisted collection, if any valid one exists, and marks the
// store ready so later changes are persisted. It reports whether data was restored.
func (s *TabStore) Load() bool {
	var tabs []domain.Tab
	raw, ok, err := s.storage.Get(domain.StorageKey)
	switch {
	case err != nil:
		utils.Logger.Warn("read persisted tabs failed, using default", "err", err)
	case !ok:
		utils.Logger.Debug("no persisted tabs, using default")
	default:
		tabs, err = decodeTabs(raw)
		if err != nil {
			utils.Logger.Warn("persisted tabs unusable, using default", "err", err)
			tabs = nil
		}
	}

	restored := tabs != nil
	s.mu.Lock()
	if restored {
		s.tabs = tabs
		s.activeID = tabs[0].ID
	}
	s.ready = true
	n := len(s.tabs)
	s.mu.Unlock()

	if restored {
		s.writeMu.Lock()
		s.lastWritten = raw
		s.writeMu.Unlock()
		utils.Logger.Info("tabs restored", "count", n)
	}
	s.metrics.SetTabs(n)
	s.notify()
	return restored
}

// Reload re-reads the storage after an external change. It does nothing when the
// stored value is what the store wrote itself or when it is not a valid collection.
func (s *TabStore) Reload() bool {
	raw, ok, err := s.storage.Get(domain.StorageKey)
	if err != nil || !ok {
		return false
	}
	s.writeMu.Lock()
	same := raw == s.lastWritten
	s.writeMu.Unlock()
	if same {
		return false
	}
	tabs, err := decodeTabs(raw)
	if err != nil {
		utils.Logger.Warn("ignoring external tabs change", "err", err)
		return false
	}

	s.mu.Lock()
	s.tabs = tabs
	if s.indexLocked(s.activeID) < 0 {
		s.activeID = tabs[0].ID
	}
	n := len(s.tabs)
	s.mu.Unlock()

	s.writeMu.Lock()
	s.lastWritten = raw
	s.writeMu.Unlock()

	utils.Logger.Info("tabs reloaded from storage", "count", n)
	s.metrics.SetTabs(n)
	s.notify()
	return true
}

// Ready reports whether the initial load attempt has completed.
func (s *TabStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Add appends a new tab and makes it active. It is a no-op at domain.MaxTabs.
func (s *TabStore) Add() (domain.Tab, bool) {
	var added domain.Tab
	ok := s.mutate("add", true, func() bool {
		if len(s.tabs) >= domain.MaxTabs {
			return false
		}
		id, ok := s.freshIDLocked()
		if !ok {
			return false
		}
		added = domain.Tab{ID: id, Title: domain.DefaultTitle(len(s.tabs) + 1)}
		s.tabs = append(s.tabs, added)
		s.activeID = added.ID
		return true
	})
	return added, ok
}

// RemoveActive removes the active tab; the tab before it becomes active, or the
// first tab when the removed one was first. It is a no-op at domain.MinTabs.
func (s *TabStore) RemoveActive() bool {
	return s.mutate("remove_active", true, func() bool {
		if len(s.tabs) <= domain.MinTabs {
			return false
		}
		idx := s.indexLocked(s.activeID)
		if idx < 0 {
			idx = 0
		}
		remaining := make([]domain.Tab, 0, len(s.tabs)-1)
		remaining = append(remaining, s.tabs[:idx]...)
		remaining = append(remaining, s.tabs[idx+1:]...)
		s.tabs = remaining

		next := idx - 1
		if next < 0 {
			next = 0
		}
		s.activeID = s.tabs[next].ID
		return true
	})
}

// Rename replaces the title of the tab with id.
func (s *TabStore) Rename(id, title string) bool {
	return s.mutate("rename", true, func() bool {
		idx := s.indexLocked(id)
		if idx < 0 {
			return false
		}
		s.tabs[idx].Title = title
		return true
	})
}

// EditContent replaces the content of the tab with id.
func (s *TabStore) EditContent(id, content string) bool {
	return s.mutate("edit_content", true, func() bool {
		idx := s.indexLocked(id)
		if idx < 0 {
			return false
		}
		s.tabs[idx].Content = content
		return true
	})
}

// SelectActive makes the tab with id active. The collection itself is unchanged,
// so nothing is persisted.
func (s *TabStore) SelectActive(id string) bool {
	return s.mutate("select", false, func() bool {
		if s.indexLocked(id) < 0 {
			return false
		}
		s.activeID = id
		return true
	})
}

// Tabs returns a copy of the collection in display order.
func (s *TabStore) Tabs() []domain.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTabs(s.tabs)
}

// Len returns the number of tabs.
func (s *TabStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tabs)
}

// ActiveID returns the id of the active tab.
func (s *TabStore) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeIDLocked()
}

// Active returns the active tab.
func (s *TabStore) Active() domain.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tabs[s.indexLocked(s.activeIDLocked())]
}

// Snapshot returns a copy of the collection and the active id.
func (s *TabStore) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Snapshot{Tabs: cloneTabs(s.tabs), ActiveID: s.activeIDLocked()}
}

// Subscribe registers fn to receive a snapshot after every change. The returned
// function removes the subscription.
func (s *TabStore) Subscribe(fn func(domain.Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Flush writes a pending change immediately.
func (s *TabStore) Flush() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	tabs := cloneTabs(s.tabs)
	s.mu.Unlock()

	s.writeLocked(tabs)
}

// Close stops the debounce timer and flushes a pending change.
func (s *TabStore) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.Flush()
}

// mutate applies fn under the lock. When fn reports a change, subscribers are
// notified and, if persist is set, a write is scheduled.
func (s *TabStore) mutate(op string, persist bool, fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	if changed && persist {
		s.schedulePersistLocked()
	}
	n := len(s.tabs)
	s.mu.Unlock()

	s.metrics.TabOp(op, changed)
	if !changed {
		utils.Logger.Debug("tab operation ignored", "op", op)
		return false
	}
	s.metrics.SetTabs(n)
	s.notify()
	return true
}

func (s *TabStore) schedulePersistLocked() {
	if !s.ready {
		return
	}
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.Flush)
		return
	}
	s.timer.Reset(s.debounce)
}

// writeLocked must be called with writeMu held. Failures are logged and dropped.
func (s *TabStore) writeLocked(tabs []domain.Tab) {
	b, err := json.Marshal(tabs)
	if err != nil {
		utils.Logger.Warn("encode tabs failed", "err", err)
		s.metrics.PersistWrite(err)
		return
	}
	err = s.storage.Set(domain.StorageKey, string(b))
	s.metrics.PersistWrite(err)
	if err != nil {
		utils.Logger.Warn("persist tabs failed", "err", err)
		return
	}
	s.lastWritten = string(b)
	utils.Logger.Debug("tabs persisted", "count", len(tabs), "bytes", len(b))
}

func (s *TabStore) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.subMu.Lock()
	fns := make([]func(domain.Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *TabStore) indexLocked(id string) int {
	for i, t := range s.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TabStore) activeIDLocked() string {
	if s.indexLocked(s.activeID) < 0 {
		s.activeID = s.tabs[0].ID
	}
	return s.activeID
}

func (s *TabStore) freshIDLocked() (string, bool) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id, true
		}
	}
	utils.Logger.Error("could not generate a unique tab id")
	return "", false
}

type persistedTab struct {
	ID      *string `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// decodeTabs parses a persisted collection. It must be a non-empty array of
// records that all carry string id, title and content fields with unique,
// non-empty ids. Records past domain.MaxTabs are dropped.
func decodeTabs(raw string) ([]domain.Tab, error) {
	var records []persistedTab
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no tabs", ErrInvalidSnapshot)
	}
	if len(records) > domain.MaxTabs {
		utils.Logger.Warn("persisted tabs exceed limit, truncating", "count", len(records), "max", domain.MaxTabs)
		records = records[:domain.MaxTabs]
	}

	seen := make(map[string]struct{}, len(records))
	tabs := make([]domain.Tab, 0, len(records))
	for i, r := range records {
		if r.ID == nil || r.Title == nil || r.Content == nil {
			return nil, fmt.Errorf("%w: record %d is missing a field", ErrInvalidSnapshot, i)
		}
		if *r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has an empty id", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[*r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSnapshot, *r.ID)
		}
		seen[*r.ID] = struct{}{}
		tabs = append(tabs, domain.Tab{ID: *r.ID, Title: *r.Title, Content: *r.Content})
	}
	return tabs, nil
}

func cloneTabs(tabs []domain.Tab) []domain.Tab {
	out := make([]domain.Tab, len(tabs))
	copy(out, tabs)
	return out
}
