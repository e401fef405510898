package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftstats/internal/config"
	"github.com/claude/liftstats/internal/importer"
	"github.com/claude/liftstats/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (defaults used when absent)")
	filePath := flag.String("file", "", "path to CSV workout export (required)")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftstats-import -file export.csv [-config config.yaml] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := loadConfig(*configPath, log)

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

	imp := importer.New(db, log, *dryRun)
	stats, err := imp.ImportFile(ctx, *filePath)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	if stats.Skipped {
		log.Info("export already imported", "fingerprint", stats.Fingerprint)
		return
	}
	log.Info("import complete",
		"sets", stats.Result.TotalSets,
		"workouts", stats.Result.WorkoutsCount,
		"skipped_duplicate_sets", stats.Result.SkippedDuplicateSets,
		"duplicate_workouts", len(stats.Result.DuplicateWorkoutIDs),
		"encoding", stats.Encoding,
	)
}

// loadConfig loads the config file when it exists; a CSV import works fine on
// defaults alone.
func loadConfig(path string, log *slog.Logger) *config.Config {
	if _, err := os.Stat(path); err != nil {
		log.Info("no config file, using defaults", "path", path)
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}
