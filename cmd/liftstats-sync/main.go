package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftstats/internal/config"
	"github.com/claude/liftstats/internal/hevy"
	"github.com/claude/liftstats/internal/importer"
	"github.com/claude/liftstats/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "fetch and report counts without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Hevy.APIKey == "" {
		log.Error("hevy.api_key is not configured, nothing to sync from")
		os.Exit(1)
	}

	dbPath := cfg.Data.DBPath()
	if err := storage.RunMigrations(dbPath, cfg.Data.MigrationsPath); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, dbPath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *dryRun {
		log.Info("DRY RUN mode — nothing will be written to the database")
	}

	client := hevy.NewClient(cfg.Hevy.BaseURL, cfg.Hevy.APIKey, cfg.Hevy.PageSize, log)
	imp := importer.New(db, log, *dryRun)

	stats, err := imp.Sync(ctx, client)
	if err != nil {
		log.Error("sync failed", "error", err)
		os.Exit(1)
	}

	if stats.Skipped {
		log.Info("no new workouts since last sync", "fingerprint", stats.Fingerprint)
		return
	}
	log.Info("sync complete",
		"sets", stats.Result.TotalSets,
		"workouts", stats.Result.WorkoutsCount,
		"skipped_duplicate_sets", stats.Result.SkippedDuplicateSets,
	)
}
