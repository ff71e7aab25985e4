package domain

import "context"

// Storage is the durable key-value surface used to survive restarts.
type Storage interface {
	// Get returns the value stored under key. The boolean is false when the key is absent.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Clipboard receives generated output on a best-effort basis.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
