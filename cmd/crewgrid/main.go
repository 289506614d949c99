package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/db"
	"github.com/javiermolinar/crewgrid/internal/logging"
	"github.com/javiermolinar/crewgrid/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()
	repo.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return ui.NewApp(repo, cfg, log).ExecuteContext(ctx)
}
