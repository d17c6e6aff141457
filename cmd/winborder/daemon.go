package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/config"
	"github.com/1broseidon/winborder/internal/daemon"
	"github.com/1broseidon/winborder/internal/hotkeys"
	"github.com/1broseidon/winborder/internal/ipc"
	"github.com/1broseidon/winborder/internal/runtimepath"
)

const (
	reconcileInterval = 10 * time.Second
	shutdownTimeout   = 2 * time.Second
)

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the border daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
	}
}

func runDaemon(parent context.Context, opts *rootOptions) error {
	path, err := opts.resolvedConfigPath()
	if err != nil {
		return err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	logger, level, err := opts.logger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn("config warning", "warning", w)
	}
	logger.Info("configuration loaded", "path", path, "rules", len(cfg.Rules))

	if ipc.NewClient().Ping() == nil {
		return errors.New("another winborder daemon is already running")
	}

	ws, disconnect, err := openWindowSystem(logger)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer disconnect()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mgr := daemon.NewManager(daemon.ManagerConfig{
		WindowSystem: ws,
		Config:       cfg,
		Accent:       colors.NewGSettingsAccent(cfg.AccentFallbackRGB(), logger),
		Logger:       logger,
	})
	svc := daemon.NewService(daemon.ServiceConfig{
		Manager:    mgr,
		ConfigPath: path,
		Level:      level,
		Quit:       cancel,
		Logger:     logger,
	})

	server, err := ipc.NewServer(svc, logger)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	removePID := writePIDFile(logger)
	defer removePID()

	g, gctx := errgroup.WithContext(ctx)
	if err := mgr.Start(gctx); err != nil {
		return fmt.Errorf("failed to start border manager: %w", err)
	}
	defer mgr.Shutdown(shutdownTimeout)

	// Hotkey callbacks run on the X event loop; reloads hop off it.
	keys := hotkeys.NewHandler(ws, logger)
	keys.Bind("reload", cfg.ReloadHotkey, func() { go svc.ReloadQuietly() })
	keys.Bind("toggle", cfg.ToggleHotkey, func() { go svc.ToggleQuietly() })

	g.Go(func() error {
		defer cancel()
		return ws.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		server.Stop()
		return nil
	})
	g.Go(func() error {
		daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: reconcileInterval,
			Logger:   logger,
		}, mgr).Run(gctx)
		return nil
	})
	g.Go(func() error {
		files := append([]string{path}, res.Files...)
		if err := config.NewWatcher(files, config.DefaultDebounce, logger).Run(gctx, svc.ReloadQuietly); err != nil {
			// Hot reload is optional; SIGHUP and IPC still work.
			logger.Warn("config watcher unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		return reloadOnHangup(gctx, svc, logger)
	})

	logger.Info("winborder daemon started", "socket", server.SocketPath(), "dpi", ws.DPI())
	err = g.Wait()
	logger.Info("shutting down winborder daemon")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func reloadOnHangup(ctx context.Context, svc *daemon.Service, logger *slog.Logger) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hup:
			logger.Info("received SIGHUP, reloading config")
			svc.ReloadQuietly()
		}
	}
}

func writePIDFile(logger *slog.Logger) func() {
	path, err := runtimepath.PIDPath()
	if err != nil {
		logger.Warn("failed to resolve pid file path", "error", err)
		return func() {}
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o600); err != nil {
		logger.Warn("failed to write pid file", "path", path, "error", err)
		return func() {}
	}
	return func() { os.Remove(path) }
}
