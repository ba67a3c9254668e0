package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"appointment-engine/internal/infra/db"
	"appointment-engine/internal/infra/migrate"
	"appointment-engine/internal/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	applied, err := migrate.Up(ctx, pool)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", applied)
}
