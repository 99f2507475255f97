// presetd is a small rocket preset store for the fireworks client.
//
// It speaks both request shapes the client supports:
//
//	POST /rockets, GET /rockets
//	GET /?command=insert|find&collection=rockets&data=<json>
//
// Usage:
//
//	go run ./cmd/presetd [--config <dir>]
//
// Configuration is read from presetd.yaml in the config directory and can be
// overridden with PRESETD_* environment variables (PRESETD_LISTENADDR,
// PRESETD_STORAGE_DRIVER, PRESETD_STORAGE_SQLITE_PATH, ...).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/fireworks/internal/presetstore"
)

var configDirFlag = flag.String("config", ".", "Directory containing presetd.yaml")

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configDirFlag, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "presetd: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails.
func run(ctx context.Context, configDir string, logOut io.Writer) error {
	cfg, err := presetstore.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := presetstore.NewLogger(logOut, cfg.LogLevel)

	store, err := presetstore.OpenStore(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("open preset store: %w", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: presetstore.NewServer(store, logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("Listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		return err
	}
	return nil
}
