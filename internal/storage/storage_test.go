package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/liftstats/internal/engine"
	"github.com/claude/liftstats/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liftstats.db")
	if err := RunMigrations(path, "../../migrations"); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	db, err := New(context.Background(), path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testSets(start time.Time) []models.RawSet {
	var sets []models.RawSet
	for i, w := range []float64{60, 80, 100} {
		sets = append(sets, models.RawSet{
			WorkoutID:     models.WorkoutID("Push Day", start),
			WorkoutTitle:  "Push Day",
			StartTime:     start,
			EndTime:       start.Add(50 * time.Minute),
			ExerciseTitle: "Bench Press (Barbell)",
			SetIndex:      i,
			SetType:       "normal",
			WeightKg:      w,
			Reps:          8 - i,
		})
	}
	return sets
}

func TestSaveAndLoadDataset(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)
	sets := testSets(start)

	fp := Fingerprint([]byte("export-v1"))
	ds := Dataset{
		Fingerprint:   fp,
		ImportID:      "import-1",
		Source:        "csv_export",
		TotalSets:     len(sets),
		WorkoutsCount: 1,
		ImportedAt:    time.Now().UTC(),
	}
	if err := db.SaveDataset(ctx, ds, sets); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	has, err := db.HasDataset(ctx, fp)
	if err != nil || !has {
		t.Fatalf("HasDataset = %v, %v, want true", has, err)
	}
	if has, _ := db.HasDataset(ctx, Fingerprint([]byte("other"))); has {
		t.Error("unknown fingerprint reported as present")
	}

	loaded, err := db.LoadRawSets(ctx)
	if err != nil {
		t.Fatalf("LoadRawSets: %v", err)
	}
	if len(loaded) != len(sets) {
		t.Fatalf("loaded %d sets, want %d", len(loaded), len(sets))
	}
	got := loaded[0]
	if got.ExerciseTitle != "Bench Press (Barbell)" || got.WeightKg != 60 || got.Reps != 8 {
		t.Errorf("first set = %+v", got)
	}
	if !got.StartTime.Equal(start) {
		t.Errorf("start time = %v, want %v", got.StartTime, start)
	}
	if got.Kind != models.SetNormal {
		t.Errorf("kind = %v, want normal", got.Kind)
	}
}

func TestSaveDatasetReplacesRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	fp := Fingerprint([]byte("export-v1"))
	ds := Dataset{Fingerprint: fp, ImportID: "a", Source: "csv_export", ImportedAt: time.Now()}
	if err := db.SaveDataset(ctx, ds, testSets(start)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	// Saving the same fingerprint again must not accumulate rows.
	if err := db.SaveDataset(ctx, ds, testSets(start)[:2]); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := db.LoadRawSets(ctx)
	if err != nil {
		t.Fatalf("LoadRawSets: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("loaded %d sets after replace, want 2", len(loaded))
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	st, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats on empty db: %v", err)
	}
	if st.Datasets != 0 || st.TotalSets != 0 || !st.LastWorkout.IsZero() {
		t.Errorf("empty stats = %+v", st)
	}

	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)
	ds := Dataset{Fingerprint: "fp", ImportID: "a", Source: "csv_export", ImportedAt: time.Now()}
	if err := db.SaveDataset(ctx, ds, testSets(start)); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	st, err = db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Datasets != 1 || st.TotalSets != 3 || st.Workouts != 1 {
		t.Errorf("stats = %+v", st)
	}
	if !st.LastWorkout.Equal(start) {
		t.Errorf("last workout = %v, want %v", st.LastWorkout, start)
	}
}

func TestCustomExerciseRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c := models.CustomExercise{
		ExerciseTitle:    "Banded Pull-Apart",
		Equipment:        "Band",
		PrimaryMuscle:    "Shoulders",
		SecondaryMuscles: []string{"Upper Back", "Traps"},
	}
	if err := db.UpsertCustomExercise(ctx, c); err != nil {
		t.Fatalf("UpsertCustomExercise: %v", err)
	}
	// Last writer wins.
	c.PrimaryMuscle = "Upper Back"
	if err := db.UpsertCustomExercise(ctx, c); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	entries, err := db.LoadCustomExercises(ctx)
	if err != nil {
		t.Fatalf("LoadCustomExercises: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.PrimaryMuscle != "Upper Back" {
		t.Errorf("primary = %q, want the latest write", got.PrimaryMuscle)
	}
	if len(got.SecondaryMuscles) != 2 || got.SecondaryMuscles[0] != "Upper Back" {
		t.Errorf("secondaries = %v", got.SecondaryMuscles)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, found, err := db.LoadSettings(ctx); err != nil || found {
		t.Fatalf("LoadSettings on empty db = found %v, err %v", found, err)
	}

	want := engine.DefaultSettings()
	want.WeightUnit = "lb"
	want.IncludeWarmupSets = true
	want.BodyWeightKg = 82.5
	if err := db.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, found, err := db.LoadSettings(ctx)
	if err != nil || !found {
		t.Fatalf("LoadSettings = found %v, err %v", found, err)
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}
