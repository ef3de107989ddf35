package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micro-ha/cudy-monitor/internal/collector"
	"github.com/micro-ha/cudy-monitor/internal/config"
	"github.com/micro-ha/cudy-monitor/internal/configsync"
	httpapi "github.com/micro-ha/cudy-monitor/internal/http"
	"github.com/micro-ha/cudy-monitor/internal/http/handlers"
	"github.com/micro-ha/cudy-monitor/internal/logging"
	"github.com/micro-ha/cudy-monitor/internal/poller"
	"github.com/micro-ha/cudy-monitor/internal/service"
	"github.com/micro-ha/cudy-monitor/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DBDir(), 0o755); err != nil {
		logger.Error("failed to create db directory", "err", err)
		os.Exit(1)
	}

	repo, err := storage.New(ctx, cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to initialize storage", "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	cfgClient := configsync.NewClient(cfg.HABaseURL, cfg.SupervisorToken)
	cfgManager := configsync.NewManager(cfgClient, logger)
	if _, err := cfgManager.Refresh(ctx); err != nil {
		logger.Warn("initial config refresh failed", "err", err)
	}

	svc := service.New(repo, collector.New(logger), cfgManager, logger)
	snapshotPoller := poller.New(svc, cfgManager, logger)

	go runConfigFallbackRefresh(ctx, cfg.ConfigRefreshInterval, cfgManager, snapshotPoller, logger)

	if cfg.SupervisorToken != "" {
		watcher := configsync.NewWatcher(cfg.HABaseURL, cfg.SupervisorToken, logger)
		go watcher.Run(ctx, func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			changed, err := cfgManager.Refresh(refreshCtx)
			if err != nil {
				logger.Warn("config refresh from event failed", "err", err)
				return
			}
			if changed {
				snapshotPoller.TriggerRefresh()
			}
		})
	} else {
		logger.Warn("SUPERVISOR_TOKEN is empty; config sync watcher disabled")
	}

	go snapshotPoller.Run(ctx)
	snapshotPoller.TriggerRefresh()

	api := handlers.New(svc, snapshotPoller, cfgManager, logger, cfg.FrontendDist)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "addr", httpServer.Addr)
	if err := httpapi.RunServer(ctx, httpServer); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server terminated with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func runConfigFallbackRefresh(ctx context.Context, interval time.Duration, cfg *configsync.Manager, p *poller.Poller, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			changed, err := cfg.Refresh(refreshCtx)
			cancel()
			if err != nil {
				logger.Warn("periodic config refresh failed", "err", err)
				continue
			}
			if changed {
				p.TriggerRefresh()
			}
		}
	}
}
