// Package importer orchestrates getting workout data into storage: a CSV
// export file or a remote API pull becomes a fingerprinted dataset of RawSet
// rows. Identical content is detected by fingerprint and skipped.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftstats/internal/hevy"
	"github.com/claude/liftstats/internal/ingest"
	"github.com/claude/liftstats/internal/ingest/csvexport"
	"github.com/claude/liftstats/internal/ingest/hevyapi"
	"github.com/claude/liftstats/internal/models"
	"github.com/claude/liftstats/internal/storage"
)

// Source labels recorded on datasets.
const (
	SourceCSVExport = "csv_export"
	SourceHevyAPI   = "hevy_api"
)

// Stats summarizes one import run.
type Stats struct {
	Fingerprint string        `json:"fingerprint"`
	ImportID    string        `json:"import_id,omitempty"`
	Source      string        `json:"source"`
	Skipped     bool          `json:"skipped"` // identical content already stored
	Encoding    string        `json:"encoding,omitempty"`
	Result      ingest.Result `json:"result"`
}

// Importer writes ingested datasets to storage.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
}

// New creates an Importer. With dryRun set nothing is written.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// ImportFile imports a CSV export from disk.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}
	return imp.ImportCSV(ctx, data)
}

// ImportCSV imports CSV export content.
func (imp *Importer) ImportCSV(ctx context.Context, data []byte) (*Stats, error) {
	fingerprint := storage.Fingerprint(data)
	if skip, err := imp.alreadyImported(ctx, fingerprint); err != nil {
		return nil, err
	} else if skip {
		imp.log.Info("export already imported", "fingerprint", fingerprint)
		return &Stats{Fingerprint: fingerprint, Source: SourceCSVExport, Skipped: true}, nil
	}

	export, err := csvexport.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	stats := &Stats{
		Fingerprint: fingerprint,
		Source:      SourceCSVExport,
		Encoding:    export.Encoding,
		Result:      export.Result,
	}
	if err := imp.save(ctx, stats, export.Sets); err != nil {
		return nil, err
	}
	return stats, nil
}

// ImportWorkouts imports an already-fetched remote workout list.
func (imp *Importer) ImportWorkouts(ctx context.Context, workouts []models.HevyWorkout) (*Stats, error) {
	payload := &models.HevyPayload{Workouts: workouts}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	fingerprint := storage.Fingerprint(encoded)
	if skip, err := imp.alreadyImported(ctx, fingerprint); err != nil {
		return nil, err
	} else if skip {
		imp.log.Info("remote history unchanged", "fingerprint", fingerprint)
		return &Stats{Fingerprint: fingerprint, Source: SourceHevyAPI, Skipped: true}, nil
	}

	sets, result := hevyapi.Flatten(payload)
	stats := &Stats{
		Fingerprint: fingerprint,
		Source:      SourceHevyAPI,
		Result:      result,
	}
	if err := imp.save(ctx, stats, sets); err != nil {
		return nil, err
	}
	return stats, nil
}

// Sync pulls the full remote history and imports it. A fetch failure merges
// nothing.
func (imp *Importer) Sync(ctx context.Context, client *hevy.Client) (*Stats, error) {
	workouts, err := client.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("syncing remote history: %w", err)
	}
	return imp.ImportWorkouts(ctx, workouts)
}

func (imp *Importer) alreadyImported(ctx context.Context, fingerprint string) (bool, error) {
	has, err := imp.db.HasDataset(ctx, fingerprint)
	if err != nil {
		return false, fmt.Errorf("checking fingerprint: %w", err)
	}
	return has, nil
}

func (imp *Importer) save(ctx context.Context, stats *Stats, sets []models.RawSet) error {
	if imp.dryRun {
		imp.log.Info("dry run, not saving",
			"source", stats.Source, "sets", stats.Result.TotalSets, "workouts", stats.Result.WorkoutsCount)
		return nil
	}

	stats.ImportID = uuid.NewString()
	ds := storage.Dataset{
		Fingerprint:          stats.Fingerprint,
		ImportID:             stats.ImportID,
		Source:               stats.Source,
		TotalSets:            stats.Result.TotalSets,
		WorkoutsCount:        stats.Result.WorkoutsCount,
		SkippedDuplicateSets: stats.Result.SkippedDuplicateSets,
		ImportedAt:           time.Now().UTC(),
	}
	if err := imp.db.SaveDataset(ctx, ds, sets); err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}

	imp.log.Info("dataset imported",
		"source", stats.Source,
		"import_id", stats.ImportID,
		"sets", stats.Result.TotalSets,
		"workouts", stats.Result.WorkoutsCount,
		"skipped_duplicates", stats.Result.SkippedDuplicateSets)
	return nil
}
