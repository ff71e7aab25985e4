package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, DefaultDebounce, cfg.Storage.Debounce)
	assert.True(t, cfg.Storage.Watch)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "en", cfg.UI.DefaultLang)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("TABSMITH_SERVER_PORT", "9090")
	t.Setenv("TABSMITH_LOG_LEVEL", "warn")
	t.Setenv("TABSMITH_STORAGE_DRIVER", "sqlite")
	t.Setenv("TABSMITH_STORAGE_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("TABSMITH_STORAGE_DEBOUNCE", "50ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 50*time.Millisecond, cfg.Storage.Debounce)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `server:
  port: 7070
storage:
  driver: memory
  debounce: 1s
ui:
  default_lang: pt-BR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, time.Second, cfg.Storage.Debounce)
	assert.Equal(t, "pt-BR", cfg.UI.DefaultLang)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Setenv("TABSMITH_STORAGE_DRIVER", "postgres")
	t.Setenv("TABSMITH_STORAGE_DEBOUNCE", "5s")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver must be one of: file sqlite memory")
	assert.Contains(t, err.Error(), "storage.debounce must be at most 2s")
}

func TestValidate_RequiredIf(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Log.File.Enabled = true
	cfg.Log.File.Path = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.file.path is required when Enabled true")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("TABSMITH_SERVER_PORT"))
	assert.Equal(t, "log.file.max_backups", envKey("TABSMITH_LOG_FILE_MAX_BACKUPS"))
	assert.Equal(t, "", envKey("TABSMITH_CONFIG"))
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	require.NoError(t, WriteDefault(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "# tabsmith configuration")
	assert.Contains(t, string(b), "sqlite_path: ./data/tabsmith.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDebounce, cfg.Storage.Debounce)
}

func TestInitI18n(t *testing.T) {
	require.Error(t, InitI18n("xx"))
	require.NoError(t, InitI18n("en"))

	ctx, err := ctxi18n.WithLocale(context.Background(), "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, i18n.Code("pt-BR"), ctxi18n.Locale(ctx).Code())
	assert.Equal(t, "Sobre", i18n.T(ctx, "about.heading"))

	ctx, err = ctxi18n.WithLocale(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, i18n.Code("en"), ctxi18n.Locale(ctx).Code())
	assert.Equal(t, "About", i18n.T(ctx, "about.heading"))
}
