package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/netutil"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		NewLogger(os.Stderr, "info").Fatal("config", "error", err)
	}
	logger := NewLogger(os.Stderr, cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.Fatal("server", "error", err)
	}
}

// run serves until SIGINT/SIGTERM. Deferred cleanup always runs before it returns.
func run(cfg Config, logger *log.Logger) error {
	var analytics *Analytics
	if cfg.DBPath != "" {
		db, err := OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open telemetry database %s: %w", cfg.DBPath, err)
		}
		defer db.Close()
		analytics = NewAnalytics(db, logger)
		defer analytics.Stop()
		logger.Info("telemetry enabled", "path", cfg.DBPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	arenas := NewArenaRegistry(cfg.DefaultMode, cfg.seed(), logger, analytics)
	arenas.Start(ctx)

	hub := NewHub(arenas, NewAuth(cfg.TicketSecret), logger, cfg.MaxConns)
	go hub.Run(ctx.Done())

	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	l = netutil.LimitListener(l, cfg.MaxConns)

	server := &http.Server{Handler: SetupRoutes(hub, analytics)}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "defaultMode", cfg.DefaultMode.String(), "tickets", cfg.TicketSecret != "")
		if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		server.Close()
	}
	return nil
}
