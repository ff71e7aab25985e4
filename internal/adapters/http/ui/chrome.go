package ui

import "context"

// Themes understood by the stylesheet.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Chrome carries the UI preferences read from cookies for one request.
type Chrome struct {
	Theme    string
	LastMenu string
	Path     string
}

// NormalizeTheme maps unknown values to ThemeLight.
func NormalizeTheme(theme string) string {
	if theme == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// OtherTheme returns the theme the toggle switches to.
func (c Chrome) OtherTheme() string {
	if c.Theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type chromeKey struct{}

// WithChrome stores c in ctx.
func WithChrome(ctx context.Context, c Chrome) context.Context {
	return context.WithValue(ctx, chromeKey{}, c)
}

// ChromeFrom returns the Chrome stored in ctx, or the light theme defaults.
func ChromeFrom(ctx context.Context) Chrome {
	if c, ok := ctx.Value(chromeKey{}).(Chrome); ok {
		return c
	}
	return Chrome{Theme: ThemeLight}
}
