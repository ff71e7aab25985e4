package ui

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChrome_Context(t *testing.T) {
	require.Equal(t, Chrome{Theme: ThemeLight}, ChromeFrom(context.Background()))

	c := Chrome{Theme: ThemeDark, LastMenu: "/about", Path: "/"}
	require.Equal(t, c, ChromeFrom(WithChrome(context.Background(), c)))
	require.Equal(t, ThemeLight, c.OtherTheme())
}

func TestNormalizeTheme(t *testing.T) {
	require.Equal(t, ThemeDark, NormalizeTheme("dark"))
	require.Equal(t, ThemeLight, NormalizeTheme("light"))
	require.Equal(t, ThemeLight, NormalizeTheme("neon"))
}

func TestStaticFS(t *testing.T) {
	for _, name := range []string{"builder.js", "style.css"} {
		b, err := fs.ReadFile(StaticFS(), name)
		require.NoError(t, err, name)
		require.NotEmpty(t, b)
	}
}
