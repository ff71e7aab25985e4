// Package testutil provides test doubles shared by package tests.
package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is returned by fakes configured to fail.
var ErrInjected = errors.New("injected failure")

// FakeStorage is an in-memory domain.Storage that counts writes and can be told to fail.
type FakeStorage struct {
	mu      sync.Mutex
	data    map[string]string
	writes  int
	GetErr  error
	SetErr  error
	history []string
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{data: map[string]string{}}
}

// Seed stores value under key without counting it as a write.
func (f *FakeStorage) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

func (f *FakeStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FakeStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value
	f.history = append(f.history, value)
	return nil
}

// FailWrites makes every later Set fail when fail is true.
func (f *FakeStorage) FailWrites(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fail {
		f.SetErr = ErrInjected
	} else {
		f.SetErr = nil
	}
}

// Writes returns the number of Set calls, failed ones included.
func (f *FakeStorage) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// History returns the successfully written values in order.
func (f *FakeStorage) History() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.history...)
}

// Value returns the stored value for key.
func (f *FakeStorage) Value(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key]
}

// RecordingClipboard is a domain.Clipboard that remembers what it was given.
type RecordingClipboard struct {
	mu    sync.Mutex
	Err   error
	texts []string
}

func (c *RecordingClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.texts = append(c.texts, text)
	return nil
}

// Texts returns every value written so far.
func (c *RecordingClipboard) Texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}
