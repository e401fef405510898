package mcp

import (
	"context"
	"fmt"

	"github.com/claude/liftstats/internal/catalog"
	"github.com/claude/liftstats/internal/engine"
	"github.com/claude/liftstats/internal/ingest"
	"github.com/claude/liftstats/internal/storage"
)

// DataSource reads the stored datasets and derives canonical sets for the
// tool handlers. Every tool call recomputes from storage so a concurrent
// import or settings change is picked up immediately.
type DataSource struct {
	db      *storage.DB
	catalog *catalog.Resolver
}

// NewDataSource wires storage and catalog for the MCP handlers.
func NewDataSource(db *storage.DB, resolver *catalog.Resolver) *DataSource {
	return &DataSource{db: db, catalog: resolver}
}

// Settings loads the persisted engine settings, falling back to defaults.
func (ds *DataSource) Settings(ctx context.Context) engine.Settings {
	st, found, err := ds.db.LoadSettings(ctx)
	if err != nil || !found {
		return engine.DefaultSettings()
	}
	return st.Normalize()
}

// Canonical returns the merged stored rows as canonical sets under the
// current settings.
func (ds *DataSource) Canonical(ctx context.Context) ([]engine.CanonicalSet, engine.Settings, error) {
	st := ds.Settings(ctx)
	raw, err := ds.db.LoadRawSets(ctx)
	if err != nil {
		return nil, st, fmt.Errorf("loading stored sets: %w", err)
	}
	merged := ingest.MergeStored(raw)
	return engine.BuildCanonical(merged, ds.catalog, st), st, nil
}

// ExerciseNames returns the distinct stored exercise names in first-seen
// order.
func (ds *DataSource) ExerciseNames(ctx context.Context) ([]string, error) {
	raw, err := ds.db.LoadRawSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stored sets: %w", err)
	}
	var names []string
	seen := make(map[string]bool)
	for _, s := range ingest.MergeStored(raw) {
		if !seen[s.ExerciseTitle] {
			seen[s.ExerciseTitle] = true
			names = append(names, s.ExerciseTitle)
		}
	}
	return names, nil
}

// Stats returns the dataset bookkeeping summary.
func (ds *DataSource) Stats(ctx context.Context) (storage.DataStats, error) {
	return ds.db.Stats(ctx)
}

// Unconfigured returns the stored exercise names the catalog cannot resolve.
func (ds *DataSource) Unconfigured(ctx context.Context) ([]string, error) {
	names, err := ds.ExerciseNames(ctx)
	if err != nil {
		return nil, err
	}
	return ds.catalog.FindUnconfigured(names), nil
}
