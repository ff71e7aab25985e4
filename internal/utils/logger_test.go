package utils

import (
	"os"
	"path/filepath"
	"testing"

	chlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_IdempotentAndDefaultLevel(t *testing.T) {
	_ = os.Unsetenv("TABSMITH_LOG_LEVEL")
	Logger = nil
	InitLogger()
	first := Logger
	require.NotNil(t, first)
	require.Equal(t, chlog.InfoLevel, first.GetLevel())

	// second call should not recreate
	InitLogger()
	require.Equal(t, first, Logger)
}

func TestInitLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("TABSMITH_LOG_LEVEL", "debug")
	Logger = nil
	InitLogger()
	require.Equal(t, chlog.DebugLevel, Logger.GetLevel())
}

func TestSetLogLevel(t *testing.T) {
	Logger = nil
	InitLogger()

	SetLogLevel("warn")
	require.Equal(t, chlog.WarnLevel, Logger.GetLevel())
	SetLogLevel(" ERROR ")
	require.Equal(t, chlog.ErrorLevel, Logger.GetLevel())
	SetLogLevel("bogus")
	require.Equal(t, chlog.ErrorLevel, Logger.GetLevel())
}

func TestConfigureLogger_WritesRollingFile(t *testing.T) {
	Logger = nil
	path := filepath.Join(t.TempDir(), "tabsmith.log")
	closer := ConfigureLogger("info", &LogFile{Path: path, MaxSizeMB: 1})
	t.Cleanup(func() {
		_ = closer.Close()
		Logger = nil
	})

	Logger.Info("hello from test", "k", "v")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello from test")
}

func TestNewTabID_Unique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewTabID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestLogToStderr(t *testing.T) {
	Logger = nil
	InitLogger()
	t.Cleanup(func() {
		console = os.Stdout
		Logger = nil
	})

	LogToStderr()
	require.Equal(t, os.Stderr, console)
	require.NotPanics(t, func() { Logger.Info("to stderr") })
}
