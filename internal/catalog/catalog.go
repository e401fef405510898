// Package catalog resolves exercise names to their muscle attribution,
// equipment and format. Resolution is a two-layer lookup: a built-in catalog
// embedded at build time, shadowed by user-authored custom entries for
// exercises the catalog does not recognize. The base table is never mutated.
package catalog

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/claude/liftstats/internal/models"
)

//go:embed data/exercises.csv
var builtinFS embed.FS

// Store persists custom exercises. Implemented by *storage.DB.
type Store interface {
	LoadCustomExercises(ctx context.Context) ([]models.CustomExercise, error)
	UpsertCustomExercise(ctx context.Context, c models.CustomExercise) error
}

// Resolver answers exercise lookups against the built-in catalog and the
// custom overrides. Reads and writes may race from HTTP handlers; the custom
// layer is guarded so a reader never observes a half-written entry.
type Resolver struct {
	base map[string]models.CatalogEntry

	mu     sync.RWMutex
	custom map[string]models.CustomExercise
	store  Store
}

// NewResolver loads the embedded catalog and the persisted custom entries.
// A nil store yields a resolver with an empty, in-memory custom layer.
func NewResolver(ctx context.Context, store Store) (*Resolver, error) {
	f, err := builtinFS.Open("data/exercises.csv")
	if err != nil {
		return nil, fmt.Errorf("opening builtin catalog: %w", err)
	}
	defer f.Close()

	base, err := parseBuiltin(f)
	if err != nil {
		return nil, fmt.Errorf("parsing builtin catalog: %w", err)
	}

	r := &Resolver{
		base:   base,
		custom: make(map[string]models.CustomExercise),
		store:  store,
	}

	if store != nil {
		entries, err := store.LoadCustomExercises(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading custom exercises: %w", err)
		}
		for _, c := range entries {
			r.custom[c.ExerciseTitle] = c
		}
	}

	return r, nil
}

// Resolve returns the catalog entry for an exercise name. A custom entry
// with a configured primary muscle wins over the built-in catalog; an
// unknown exercise resolves to an entry with all fields empty.
func (r *Resolver) Resolve(name string) models.CatalogEntry {
	r.mu.RLock()
	c, ok := r.custom[name]
	r.mu.RUnlock()

	if ok && c.Configured() {
		return models.CatalogEntry{
			ExerciseTitle: c.ExerciseTitle,
			PrimaryMuscle: c.PrimaryMuscle,
			OtherMuscles:  c.SecondaryMuscles,
			Equipment:     c.Equipment,
			Format:        models.FormatWeightReps,
		}
	}
	if e, ok := r.base[name]; ok {
		return e
	}
	return models.CatalogEntry{ExerciseTitle: name}
}

// FindUnconfigured returns the names (in input order, deduplicated) that
// have no built-in entry and no configured custom entry. Collaborators use
// it to prompt for classification of new exercises.
func (r *Resolver) FindUnconfigured(names []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := r.base[name]; ok {
			continue
		}
		if c, ok := r.custom[name]; ok && c.Configured() {
			continue
		}
		out = append(out, name)
	}
	return out
}

// UpsertCustom inserts or updates a custom exercise by name. Secondary
// muscles arrive semicolon-separated. The write goes to the store first, so
// the in-memory layer never leads the persisted one.
func (r *Resolver) UpsertCustom(ctx context.Context, name, equipment, primaryMuscle, secondaryMuscles string) error {
	if name == "" {
		return fmt.Errorf("exercise name is required")
	}
	c := models.CustomExercise{
		ExerciseTitle:    name,
		Equipment:        equipment,
		PrimaryMuscle:    primaryMuscle,
		SecondaryMuscles: SplitMuscles(secondaryMuscles),
	}

	if r.store != nil {
		if err := r.store.UpsertCustomExercise(ctx, c); err != nil {
			return fmt.Errorf("persisting custom exercise %q: %w", name, err)
		}
	}

	r.mu.Lock()
	r.custom[name] = c
	r.mu.Unlock()
	return nil
}

// CustomExercises returns a snapshot of all custom entries.
func (r *Resolver) CustomExercises() []models.CustomExercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CustomExercise, 0, len(r.custom))
	for _, c := range r.custom {
		out = append(out, c)
	}
	return out
}

// SplitMuscles splits a semicolon-separated muscle list, dropping blanks.
func SplitMuscles(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBuiltin(r io.Reader) (map[string]models.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 8

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) == 0 || header[0] != "exercise_title" {
		return nil, fmt.Errorf("unexpected catalog header: %v", header)
	}

	base := make(map[string]models.CatalogEntry)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog row: %w", err)
		}
		e := models.CatalogEntry{
			ExerciseTitle: rec[0],
			PrimaryMuscle: rec[1],
			OtherMuscles:  SplitMuscles(rec[2]),
			Equipment:     rec[3],
			ExerciseType:  rec[4],
			Format:        rec[5],
			Unit:          rec[6],
			MediaURL:      rec[7],
		}
		base[e.ExerciseTitle] = e
	}
	return base, nil
}
