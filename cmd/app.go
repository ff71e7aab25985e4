package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OliveiraNt/tabsmith/internal/application"
	"github.com/OliveiraNt/tabsmith/internal/config"
	"github.com/OliveiraNt/tabsmith/internal/infrastructure/clipboard"
	"github.com/OliveiraNt/tabsmith/internal/infrastructure/storage"
	"github.com/OliveiraNt/tabsmith/internal/metrics"
	"github.com/OliveiraNt/tabsmith/internal/utils"
)

// app holds the services wired from one configuration.
type app struct {
	cfg     *config.Config
	backend storage.Backend
	metrics *metrics.Metrics
	store   *application.TabStore
	builder *application.BuilderService
	logFile io.Closer
}

// resolveConfigPath picks the --config flag, then TABSMITH_CONFIG, then the search path.
func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return config.FindConfigPath()
}

// bootstrap loads the configuration, opens storage and restores the tabs.
func bootstrap(path string) (*app, error) {
	utils.InitLogger()

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var file *utils.LogFile
	if cfg.Log.File.Enabled {
		file = &utils.LogFile{
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		}
	}
	logFile := utils.ConfigureLogger(cfg.Log.Level, file)
	utils.Logger.Debug("configuration loaded", "path", path, "driver", cfg.Storage.Driver)

	if err := config.InitI18n(cfg.UI.DefaultLang); err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("load locales: %w", err)
	}

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	m := metrics.New()
	store := application.NewTabStore(backend,
		application.WithDebounce(cfg.Storage.Debounce),
		application.WithMetrics(m),
	)
	store.Load()

	return &app{
		cfg:     cfg,
		backend: backend,
		metrics: m,
		store:   store,
		builder: application.NewBuilderService(store, clipboard.New(cfg.UI.Clipboard), m),
		logFile: logFile,
	}, nil
}

// Close flushes pending tab changes and releases storage and the log file.
func (a *app) Close() error {
	a.store.Close()
	return errors.Join(a.backend.Close(), a.logFile.Close())
}
