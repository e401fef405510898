package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftstats/internal/catalog"
	"github.com/claude/liftstats/internal/config"
	"github.com/claude/liftstats/internal/mcp"
	"github.com/claude/liftstats/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (defaults used when absent)")
	flag.Parse()

	// Stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

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

	resolver, err := catalog.NewResolver(ctx, db)
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}

	ds := mcp.NewDataSource(db, resolver)
	srv := mcp.New(ds, Version, log)

	log.Info("LiftStats MCP server starting", "version", Version, "db", dbPath)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

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
