package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	httpserver "github.com/OliveiraNt/tabsmith/internal/adapters/http"
	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/OliveiraNt/tabsmith/internal/infrastructure/storage"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap(resolveConfigPath(configPath))
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			utils.Logger.Warn("shutdown cleanup failed", "err", err)
		}
	}()

	if a.cfg.Storage.Watch {
		watchStorage(a)
	}

	return StartWeb(ctx, a)
}

// watchStorage reloads the store when another process rewrites the persisted tabs.
func watchStorage(a *app) {
	w, ok := a.backend.(storage.Watcher)
	if !ok {
		utils.Logger.Debug("storage driver does not support watching", "driver", a.cfg.Storage.Driver)
		return
	}
	err := w.Watch(func(key string) {
		if key == domain.StorageKey {
			a.store.Reload()
		}
	})
	if err != nil {
		utils.Logger.Error("failed to start storage watcher", "err", err)
	}
}

// StartWeb runs the HTTP server until SIGINT or SIGTERM.
func StartWeb(ctx context.Context, a *app) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpserver.New(a.builder, a.metrics)
	utils.Logger.Info("HTTP UI starting", "addr", a.cfg.Server.Addr(), "tabs", a.store.Len())
	if err := server.Run(ctx, a.cfg.Server); err != nil {
		utils.Logger.Error("HTTP UI terminated", "err", err)
		return err
	}
	utils.Logger.Info("HTTP UI stopped")
	return nil
}
