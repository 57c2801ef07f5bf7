package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/colorBanded/rayCave/internal/server"
	"github.com/colorBanded/rayCave/internal/server/config"
	"github.com/colorBanded/rayCave/internal/server/storage"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.ViewDistance, "view-distance", cfg.ViewDistance, "chunk load radius")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "chunk worker count")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator (default or flat)")
	flag.IntVar(&cfg.SpawnRadius, "spawn-radius", cfg.SpawnRadius, "pre-generated radius around origin")
	flag.DurationVar(&cfg.AutosaveInterval, "autosave", cfg.AutosaveInterval, "autosave interval")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// File config fills in whatever the flags didn't set.
	st, err := storage.New(cfg.DataDir, log)
	if err != nil {
		log.Error("open data directory", "error", err)
		os.Exit(1)
	}
	fromFile := config.DefaultConfig()
	if err := st.LoadConfig(fromFile); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		log.Info("no seed configured, picked one", "seed", cfg.Seed)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("create engine", "error", err)
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		log.Error("engine error", "error", err)
		os.Exit(1)
	}
}
