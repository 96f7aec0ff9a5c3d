// Package main is the entry point for the ignisd notification daemon.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/newor0599/ignis/internal/config"
	"github.com/newor0599/ignis/internal/daemon"
	"github.com/newor0599/ignis/internal/dbus"
	"github.com/newor0599/ignis/internal/options"
	"github.com/newor0599/ignis/internal/popup"
	"github.com/newor0599/ignis/internal/store"
)

// Build-time variables (set via ldflags)
var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to the ignisd config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error), overrides config")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ignisd version", version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := cfg.Daemon.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	slog.SetDefault(logger)

	logger.Info("starting ignisd", "version", version)

	optionsPath, err := cfg.OptionsPath()
	if err != nil {
		logger.Error("failed to resolve options path", "error", err)
		os.Exit(1)
	}
	opts, err := options.NewService(optionsPath, logger)
	if err != nil {
		logger.Error("failed to initialize options", "error", err)
		os.Exit(1)
	}

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		logger.Error("failed to resolve history path", "error", err)
		os.Exit(1)
	}
	persistence, err := store.NewJSONPersistence(historyPath, logger)
	if err != nil {
		logger.Error("failed to create persistence", "error", err)
		os.Exit(1)
	}

	notificationStore := store.NewStore(persistence, logger)
	if err := notificationStore.Hydrate(); err != nil {
		logger.Warn("failed to hydrate notification store", "error", err)
	}
	logger.Info("notification store initialized",
		"path", historyPath,
		"count", notificationStore.Count(),
		"id_counter", notificationStore.Counter(),
	)

	imagesDir, err := cfg.ImagesPath()
	if err != nil {
		logger.Error("failed to resolve images path", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		logger.Error("failed to create images directory", "error", err)
		os.Exit(1)
	}

	popups := popup.NewManager(popup.ParsePolicy(cfg.Daemon.EvictionPolicy))

	service, err := daemon.NewService(daemon.Params{
		Store:     notificationStore,
		Popups:    popups,
		Options:   opts,
		ImagesDir: imagesDir,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to initialize notification service", "error", err)
		os.Exit(1)
	}

	server := dbus.NewServer(logger)
	server.SetServerInfo(dbus.ServerInfo{
		Name:        "ignisd",
		Vendor:      "ignis",
		Version:     version,
		SpecVersion: "1.2",
	})
	server.SetNotifyHandler(service.Notify)
	server.SetCloseHandler(service.HandleCloseRequest)

	if err := server.Start(); err != nil {
		if errors.Is(err, dbus.ErrBusNameTaken) {
			// Degraded: keep running without functioning transport.
			logger.Error("another notification daemon is already running; requests will not be received", "error", err)
		} else {
			logger.Error("failed to start D-Bus server", "error", err)
			os.Exit(1)
		}
	} else {
		service.SetSignaler(server)
	}

	// Pick up external options-file edits (e.g. ignisctl dnd toggle).
	optionsWatcher, err := options.NewWatcher(opts, logger)
	if err != nil {
		logger.Warn("failed to create options watcher", "error", err)
	} else if err := optionsWatcher.Start(); err != nil {
		logger.Warn("failed to start options watcher", "error", err)
	}

	logger.Info("ignisd ready", "dbus_interface", dbus.Interface)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	if optionsWatcher != nil {
		if err := optionsWatcher.Stop(); err != nil {
			logger.Warn("error stopping options watcher", "error", err)
		}
	}
	if err := server.Stop(); err != nil {
		logger.Warn("error stopping D-Bus server", "error", err)
	}
	service.Shutdown()

	logger.Info("ignisd stopped")
}

// parseLevel maps a config string to a slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
