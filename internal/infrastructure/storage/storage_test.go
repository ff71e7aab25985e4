package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/config"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()

	_, ok, err := b.Get("tabs-data")
	require.NoError(t, err)
	require.False(t, ok)

	blob := `[{"id":"1","title":"A","content":"hi\nthere"}]`
	require.NoError(t, b.Set("tabs-data", blob))
	got, ok, err := b.Get("tabs-data")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, blob, got)

	require.NoError(t, b.Set("tabs-data", "[]"))
	got, ok, err = b.Get("tabs-data")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", got)

	require.ErrorIs(t, b.Set("../escape", "x"), ErrInvalidKey)
}

func TestMemoryStorage(t *testing.T) {
	exerciseBackend(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseBackend(t, s)

	_, err = os.Stat(filepath.Join(s.Dir(), "tabs-data.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Dir(), "tabs-data.json.tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestFileStorage_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewFileStorage(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestFileStorage_WatchReportsExternalWrites(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	var (
		mu   sync.Mutex
		keys []string
	)
	require.NoError(t, s.Watch(func(key string) {
		mu.Lock()
		keys = append(keys, key)
		mu.Unlock()
	}))

	// several quick writes coalesce into one notification
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "tabs-data.json"), []byte("[]"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(keys) == 1
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	require.Equal(t, []string{"tabs-data"}, keys)
	mu.Unlock()
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "db", "tabsmith.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseBackend(t, s)

	_, _, err = s.Get("")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestSQLiteStorage_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabsmith.db")
	s, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("tabs-data", "payload"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	got, ok, err := s.Get("tabs-data")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "payload", got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(config.StorageConfig{Driver: config.DriverFile, Dir: dir})
	require.NoError(t, err)
	_, isWatcher := b.(Watcher)
	require.True(t, isWatcher)
	require.NoError(t, b.Close())

	b, err = Open(config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b, err = Open(config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = Open(config.StorageConfig{Driver: "redis"})
	require.ErrorIs(t, err, ErrUnknownDriver)
}
