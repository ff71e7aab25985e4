// Package clipboard adapts the host clipboard to the domain.Clipboard surface.
package clipboard

import (
	"context"
	"errors"

	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the host has no usable clipboard utility.
var ErrUnsupported = errors.New("clipboard unsupported on this host")

// System writes to the operating system clipboard.
type System struct{}

// WriteText copies text to the system clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Noop discards everything written to it.
type Noop struct{}

// WriteText does nothing.
func (Noop) WriteText(context.Context, string) error { return nil }

// New returns the system clipboard when enabled, otherwise a no-op clipboard.
func New(enabled bool) domain.Clipboard {
	if enabled {
		return System{}
	}
	return Noop{}
}
