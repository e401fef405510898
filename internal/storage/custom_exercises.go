package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftstats/internal/models"
)

// LoadCustomExercises returns all persisted custom exercises.
func (db *DB) LoadCustomExercises(ctx context.Context) ([]models.CustomExercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT exercise_title, equipment, primary_muscle, secondary_muscles
		 FROM custom_exercises ORDER BY exercise_title`)
	if err != nil {
		return nil, fmt.Errorf("querying custom exercises: %w", err)
	}
	defer rows.Close()

	var result []models.CustomExercise
	for rows.Next() {
		var c models.CustomExercise
		var secondaries string
		if err := rows.Scan(&c.ExerciseTitle, &c.Equipment, &c.PrimaryMuscle, &secondaries); err != nil {
			return nil, fmt.Errorf("scanning custom exercise: %w", err)
		}
		c.SecondaryMuscles = splitList(secondaries)
		result = append(result, c)
	}
	return result, rows.Err()
}

// UpsertCustomExercise inserts or replaces a custom exercise by title. The
// single statement keeps the last-writer-wins guarantee without a read.
func (db *DB) UpsertCustomExercise(ctx context.Context, c models.CustomExercise) error {
	_, err := db.sql.ExecContext(ctx,
		`INSERT OR REPLACE INTO custom_exercises
		 (exercise_title, equipment, primary_muscle, secondary_muscles)
		 VALUES (?, ?, ?, ?)`,
		c.ExerciseTitle, c.Equipment, c.PrimaryMuscle, strings.Join(c.SecondaryMuscles, ";"))
	if err != nil {
		return fmt.Errorf("upserting custom exercise %q: %w", c.ExerciseTitle, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
