package application

import (
	"context"
	"sync"

	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/OliveiraNt/tabsmith/internal/exporter"
	"github.com/OliveiraNt/tabsmith/internal/metrics"
	"github.com/OliveiraNt/tabsmith/internal/utils"
)

// BuilderService is the façade used by the web and command line front ends.
// It forwards edits to the TabStore and keeps the last generated export.
type BuilderService struct {
	store     *TabStore
	clipboard domain.Clipboard
	metrics   *metrics.Metrics

	mu            sync.RWMutex
	lastGenerated string
}

// NewBuilderService creates a new BuilderService.
func NewBuilderService(store *TabStore, clipboard domain.Clipboard, m *metrics.Metrics) *BuilderService {
	return &BuilderService{store: store, clipboard: clipboard, metrics: m}
}

// Store returns the underlying TabStore.
func (s *BuilderService) Store() *TabStore { return s.store }

func (s *BuilderService) Snapshot() domain.Snapshot { return s.store.Snapshot() }

func (s *BuilderService) Add() (domain.Tab, bool) { return s.store.Add() }

func (s *BuilderService) RemoveActive() bool { return s.store.RemoveActive() }

func (s *BuilderService) Rename(id, title string) bool { return s.store.Rename(id, title) }

func (s *BuilderService) EditContent(id, content string) bool {
	return s.store.EditContent(id, content)
}

func (s *BuilderService) SelectActive(id string) bool { return s.store.SelectActive(id) }

// Generate renders the current collection as a standalone HTML document and
// remembers it as the last generated output.
func (s *BuilderService) Generate() string {
	tabs := s.store.Tabs()
	out := exporter.Render(tabs)

	s.mu.Lock()
	s.lastGenerated = out
	s.mu.Unlock()

	s.metrics.Export()
	utils.Logger.Debug("export generated", "tabs", len(tabs), "bytes", len(out))
	return out
}

// LastGenerated returns the output of the last Generate call, or "" if there was none.
func (s *BuilderService) LastGenerated() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGenerated
}

// CopyLastGenerated writes the last generated output to the clipboard. It reports
// false when nothing was generated yet or the clipboard write failed.
func (s *BuilderService) CopyLastGenerated(ctx context.Context) bool {
	out := s.LastGenerated()
	if out == "" || s.clipboard == nil {
		return false
	}
	if err := s.clipboard.WriteText(ctx, out); err != nil {
		utils.Logger.Debug("copy to clipboard failed", "err", err)
		return false
	}
	return true
}
