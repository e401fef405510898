package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/liftstats/internal/engine"
)

// LoadSettings returns the persisted engine settings. found is false when
// nothing has been saved yet; callers fall back to engine.DefaultSettings.
func (db *DB) LoadSettings(ctx context.Context) (st engine.Settings, found bool, err error) {
	err = db.sql.QueryRowContext(ctx,
		`SELECT weight_unit, distance_unit, week_start, include_warmup_sets,
		 secondary_muscle_factor, drop_set_factor, include_bodyweight, body_weight_kg
		 FROM settings WHERE id = 1`).Scan(
		&st.WeightUnit, &st.DistanceUnit, &st.WeekStart, &st.IncludeWarmupSets,
		&st.SecondaryMuscleFactor, &st.DropSetFactor, &st.IncludeBodyweight, &st.BodyWeightKg)
	if err == sql.ErrNoRows {
		return engine.Settings{}, false, nil
	}
	if err != nil {
		return engine.Settings{}, false, fmt.Errorf("loading settings: %w", err)
	}
	return st, true, nil
}

// SaveSettings persists the engine settings as the single settings row.
func (db *DB) SaveSettings(ctx context.Context, st engine.Settings) error {
	_, err := db.sql.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings
		 (id, weight_unit, distance_unit, week_start, include_warmup_sets,
		  secondary_muscle_factor, drop_set_factor, include_bodyweight, body_weight_kg)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.WeightUnit, st.DistanceUnit, st.WeekStart, st.IncludeWarmupSets,
		st.SecondaryMuscleFactor, st.DropSetFactor, st.IncludeBodyweight, st.BodyWeightKg)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
