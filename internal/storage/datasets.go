package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftstats/internal/models"
)

// Fingerprint identifies imported content by its SHA-256 digest. Re-importing
// a byte-identical export hits the same fingerprint and becomes a no-op.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Dataset is one imported payload's bookkeeping row.
type Dataset struct {
	Fingerprint          string    `json:"fingerprint"`
	ImportID             string    `json:"import_id"`
	Source               string    `json:"source"` // csv_export | hevy_api
	TotalSets            int       `json:"total_sets"`
	WorkoutsCount        int       `json:"workouts_count"`
	SkippedDuplicateSets int       `json:"skipped_duplicate_sets"`
	ImportedAt           time.Time `json:"imported_at"`
}

const timeFormat = time.RFC3339Nano

// HasDataset reports whether content with this fingerprint was already
// imported.
func (db *DB) HasDataset(ctx context.Context, fingerprint string) (bool, error) {
	var count int
	err := db.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM datasets WHERE fingerprint = ?`, fingerprint,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking dataset %s: %w", fingerprint, err)
	}
	return count > 0, nil
}

// SaveDataset stores a dataset and its rows in one transaction, replacing any
// previous rows under the same fingerprint.
func (db *DB) SaveDataset(ctx context.Context, ds Dataset, sets []models.RawSet) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO datasets
		 (fingerprint, import_id, source, total_sets, workouts_count, skipped_duplicate_sets, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.Fingerprint, ds.ImportID, ds.Source,
		ds.TotalSets, ds.WorkoutsCount, ds.SkippedDuplicateSets,
		ds.ImportedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM raw_sets WHERE fingerprint = ?`, ds.Fingerprint); err != nil {
		return fmt.Errorf("clearing previous rows: %w", err)
	}

	// Batch in chunks to stay under the sqlite bind-variable limit.
	const cols = 14
	const chunk = 60
	for start := 0; start < len(sets); start += chunk {
		end := start + chunk
		if end > len(sets) {
			end = len(sets)
		}
		batch := sets[start:end]

		args := make([]any, 0, len(batch)*cols)
		valueStrings := make([]string, 0, len(batch))
		for _, s := range batch {
			valueStrings = append(valueStrings, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
			args = append(args, ds.Fingerprint, s.WorkoutID, s.WorkoutTitle,
				s.StartTime.UTC().Format(timeFormat), s.EndTime.UTC().Format(timeFormat),
				s.ExerciseTitle, s.SetIndex, s.SetID, s.SetType,
				s.WeightKg, s.Reps, s.BodyWeightKg, s.DurationSec, s.DistanceKm)
		}

		query := `INSERT INTO raw_sets (fingerprint, workout_id, workout_title,
			start_time, end_time, exercise_title, set_index, set_id, set_type,
			weight_kg, reps, body_weight_kg, duration_seconds, distance_km) VALUES ` +
			strings.Join(valueStrings, ",")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting raw sets: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dataset: %w", err)
	}
	return nil
}

// LoadRawSets returns every stored set across all datasets, ordered by start
// time. Overlapping datasets may repeat workouts; callers merge through the
// ingest dedup before aggregating.
func (db *DB) LoadRawSets(ctx context.Context) ([]models.RawSet, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT workout_id, workout_title, start_time, end_time,
		 exercise_title, set_index, set_id, set_type,
		 weight_kg, reps, body_weight_kg, duration_seconds, distance_km
		 FROM raw_sets
		 ORDER BY start_time ASC, workout_id ASC, exercise_title ASC, set_index ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying raw sets: %w", err)
	}
	defer rows.Close()

	var result []models.RawSet
	for rows.Next() {
		var s models.RawSet
		var start, end string
		if err := rows.Scan(&s.WorkoutID, &s.WorkoutTitle, &start, &end,
			&s.ExerciseTitle, &s.SetIndex, &s.SetID, &s.SetType,
			&s.WeightKg, &s.Reps, &s.BodyWeightKg, &s.DurationSec, &s.DistanceKm); err != nil {
			return nil, fmt.Errorf("scanning raw set: %w", err)
		}
		s.StartTime, _ = time.Parse(timeFormat, start)
		s.EndTime, _ = time.Parse(timeFormat, end)
		s.Kind = models.ClassifySetType(s.SetType)
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListDatasets returns the import bookkeeping rows, newest first.
func (db *DB) ListDatasets(ctx context.Context) ([]Dataset, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT fingerprint, import_id, source, total_sets, workouts_count,
		 skipped_duplicate_sets, imported_at
		 FROM datasets ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var result []Dataset
	for rows.Next() {
		var ds Dataset
		var imported string
		if err := rows.Scan(&ds.Fingerprint, &ds.ImportID, &ds.Source,
			&ds.TotalSets, &ds.WorkoutsCount, &ds.SkippedDuplicateSets, &imported); err != nil {
			return nil, fmt.Errorf("scanning dataset: %w", err)
		}
		ds.ImportedAt, _ = time.Parse(timeFormat, imported)
		result = append(result, ds)
	}
	return result, rows.Err()
}

// DataStats summarizes what is stored.
type DataStats struct {
	Datasets     int       `json:"datasets"`
	TotalSets    int       `json:"total_sets"`
	Workouts     int       `json:"workouts"`
	FirstWorkout time.Time `json:"first_workout,omitempty"`
	LastWorkout  time.Time `json:"last_workout,omitempty"`
	LastImport   time.Time `json:"last_import,omitempty"`
}

// Stats computes dataset counts and the covered date range.
func (db *DB) Stats(ctx context.Context) (DataStats, error) {
	var st DataStats

	err := db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets`).Scan(&st.Datasets)
	if err != nil {
		return st, fmt.Errorf("counting datasets: %w", err)
	}

	var first, last, imported sql.NullString
	err = db.sql.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT workout_id), MIN(start_time), MAX(start_time)
		 FROM raw_sets`).Scan(&st.TotalSets, &st.Workouts, &first, &last)
	if err != nil {
		return st, fmt.Errorf("summarizing raw sets: %w", err)
	}
	if first.Valid {
		st.FirstWorkout, _ = time.Parse(timeFormat, first.String)
	}
	if last.Valid {
		st.LastWorkout, _ = time.Parse(timeFormat, last.String)
	}

	err = db.sql.QueryRowContext(ctx, `SELECT MAX(imported_at) FROM datasets`).Scan(&imported)
	if err != nil {
		return st, fmt.Errorf("finding last import: %w", err)
	}
	if imported.Valid {
		st.LastImport, _ = time.Parse(timeFormat, imported.String)
	}
	return st, nil
}
