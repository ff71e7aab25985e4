// Package config loads and validates the tabsmith configuration.
// Values are layered with koanf: built-in defaults, then an optional YAML file,
// then TABSMITH_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override configuration keys.
const EnvPrefix = "TABSMITH_"

// Default configuration values.
const (
	DefaultServerPort       = 8080
	DefaultDebounce         = 200 * time.Millisecond
	DefaultLogFileMaxSizeMB = 10
	DefaultLogFileBackups   = 3
	DefaultLogFileMaxAge    = 28
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `koanf:"server"  validate:"required"`
	Storage StorageConfig `koanf:"storage" validate:"required"`
	Log     LogConfig     `koanf:"log"     validate:"required"`
	UI      UIConfig      `koanf:"ui"      validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects and tunes the persistence surface.
type StorageConfig struct {
	Driver     string        `koanf:"driver"      validate:"required,oneof=file sqlite memory"`
	Dir        string        `koanf:"dir"         validate:"required_if=Driver file"`
	SQLitePath string        `koanf:"sqlite_path" validate:"required_if=Driver sqlite"`
	Debounce   time.Duration `koanf:"debounce"    validate:"min=10ms,max=2s"`
	Watch      bool          `koanf:"watch"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string        `koanf:"level" validate:"required,oneof=debug info warn error"`
	File  LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// UIConfig contains editor settings.
type UIConfig struct {
	DefaultLang string `koanf:"default_lang" validate:"required,oneof=en pt-BR"`
	Clipboard   bool   `koanf:"clipboard"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "127.0.0.1",
		"server.port":             DefaultServerPort,
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.shutdown_timeout": "5s",

		"storage.driver":      DriverFile,
		"storage.dir":         "./data",
		"storage.sqlite_path": "./data/tabsmith.db",
		"storage.debounce":    DefaultDebounce.String(),
		"storage.watch":       true,

		"log.level":            "info",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/tabsmith.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileBackups,
		"log.file.max_age":     DefaultLogFileMaxAge,
		"log.file.compress":    true,

		"ui.default_lang": "en",
		"ui.clipboard":    true,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (TABSMITH_ prefix, e.g. TABSMITH_SERVER_PORT)
//  2. The YAML file at path, when path is not empty and the file exists
//  3. Default values
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := loadFileIfExists(k, path); err != nil {
			return nil, fmt.Errorf("loading config file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps TABSMITH_STORAGE_SQLITE_PATH to storage.sqlite_path. Variables that
// do not name a known key are ignored.
func envKey(s string) string {
	flat := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for key := range defaults() {
		if strings.ReplaceAll(key, ".", "_") == flat {
			return key
		}
	}
	return ""
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
