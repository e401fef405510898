package engine

import (
	"math"
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
)

func TestBuildPeriodSummaryZeroFills(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
	}, testCatalog, st)

	summary := BuildPeriodSummary(sets, ViewWeek, st, now)
	if len(summary) != WeekWindowPeriods {
		t.Fatalf("summary length = %d, want %d", len(summary), WeekWindowPeriods)
	}

	last := summary[len(summary)-1]
	if last.Workouts != 1 {
		t.Errorf("workouts = %d, want 1 (two sets, one workout)", last.Workouts)
	}
	if last.DurationHours != 1 {
		t.Errorf("duration = %v hours, want 1 (counted once per workout)", last.DurationHours)
	}
	if last.Volume != 1000 {
		t.Errorf("volume = %v, want 1000", last.Volume)
	}
	if last.EffectiveSets != 2 {
		t.Errorf("effective sets = %v, want 2", last.EffectiveSets)
	}

	for _, b := range summary[:len(summary)-1] {
		if b.Workouts != 0 || b.Volume != 0 || b.EffectiveSets != 0 || b.DurationHours != 0 {
			t.Errorf("period %v not zero-filled: %+v", b.PeriodStart, b)
		}
	}
}

// A workout training two groups must contribute its duration once in total:
// the split shares across groups sum back to the full duration.
func TestDurationDistributionNoDoubleCount(t *testing.T) {
	st := DefaultSettings()
	st.SecondaryMuscleFactor = 0 // isolate the primary groups
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	raw := []models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
		rawSet("Squat (Barbell)", "normal", 140, 5, start),
		rawSet("Squat (Barbell)", "normal", 140, 5, start),
	}
	sets := BuildCanonical(raw, testCatalog, st)

	rows := BuildMuscleDistribution(sets, ViewWeek, MetricDuration, st, now)
	var total float64
	for _, r := range rows {
		total += r.Value
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("summed duration shares = %v hours, want 1 (one workout)", total)
	}
	// Chest (3 sets) and Legs (2 sets) split the hour evenly, not by set count.
	for _, r := range rows {
		if math.Abs(r.Value-0.5) > 1e-9 {
			t.Errorf("group %s duration share = %v, want 0.5", r.MuscleGroup, r.Value)
		}
	}
}

// With the secondary factor at zero, secondary groups receive no credit and
// must not show up as trained in the workout counts or the duration split.
func TestZeroWeightCreditsDoNotMarkGroupsTrained(t *testing.T) {
	st := DefaultSettings()
	st.SecondaryMuscleFactor = 0
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	// Bench also lists Triceps and Shoulders secondaries; at factor 0 only
	// Chest and Legs count as trained.
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
		rawSet("Squat (Barbell)", "normal", 140, 5, start),
	}, testCatalog, st)

	counts := map[string]float64{}
	for _, r := range BuildMuscleDistribution(sets, ViewWeek, MetricWorkouts, st, now) {
		counts[r.MuscleGroup] += r.Value
	}
	if len(counts) != 2 {
		t.Errorf("workout counts cover groups %v, want Chest and Legs only", counts)
	}
	if counts[GroupChest] != 1 || counts[GroupLegs] != 1 {
		t.Errorf("workout counts = %v, want 1 for Chest and Legs", counts)
	}

	durations := map[string]float64{}
	for _, r := range BuildMuscleDistribution(sets, ViewWeek, MetricDuration, st, now) {
		durations[r.MuscleGroup] += r.Value
	}
	if len(durations) != 2 {
		t.Errorf("duration shares cover groups %v, want Chest and Legs only", durations)
	}
}

func TestMuscleDistributionVolumeAndSets(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
	}, testCatalog, st)

	byGroup := func(rows []DistributionRow) map[string]float64 {
		m := make(map[string]float64)
		for _, r := range rows {
			m[r.MuscleGroup] += r.Value
		}
		return m
	}

	vols := byGroup(BuildMuscleDistribution(sets, ViewWeek, MetricVolume, st, now))
	if vols[GroupChest] != 500 {
		t.Errorf("Chest volume = %v, want 500", vols[GroupChest])
	}
	// Triceps and Shoulders secondaries each take half credit.
	if vols[GroupArms] != 250 {
		t.Errorf("Arms volume = %v, want 250", vols[GroupArms])
	}
	if vols[GroupShoulders] != 250 {
		t.Errorf("Shoulders volume = %v, want 250", vols[GroupShoulders])
	}

	counts := byGroup(BuildMuscleDistribution(sets, ViewWeek, MetricSets, st, now))
	if counts[GroupChest] != 1 {
		t.Errorf("Chest sets = %v, want 1", counts[GroupChest])
	}
	if counts[GroupArms] != 0.5 {
		t.Errorf("Arms sets = %v, want 0.5", counts[GroupArms])
	}
}

func TestFineDistributionCarriesInclusionCredit(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bent Over Row (Barbell)", "normal", 80, 8, start),
	}, testCatalog, st)

	fine := BuildFineMuscleDistribution(sets, ViewWeek, MetricSets, st, now)
	var traps, upperBack float64
	for _, r := range fine {
		switch r.FineMuscle {
		case "Traps":
			traps += r.Value
		case "Upper Back":
			upperBack += r.Value
		}
	}
	if traps != 1 {
		t.Errorf("Traps fine credit = %v, want 1", traps)
	}
	if upperBack != 1 {
		t.Errorf("Upper Back fine credit = %v, want 1", upperBack)
	}

	// The coarse view must not see the inclusion row: Back gets the primary's
	// single credit, not two.
	coarse := BuildMuscleDistribution(sets, ViewWeek, MetricSets, st, now)
	var back float64
	for _, r := range coarse {
		if r.MuscleGroup == GroupBack {
			back += r.Value
		}
	}
	if back != 1 {
		t.Errorf("Back coarse credit = %v, want 1 (inclusion row is fine-only)", back)
	}
}

func TestDistributionSkipsUnmappedMuscles(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	resolver := mapResolver{
		"Running": {
			ExerciseTitle: "Running",
			PrimaryMuscle: "Cardio",
			Format:        models.FormatDistanceDuration,
		},
	}
	sets := BuildCanonical([]models.RawSet{
		rawSet("Running", "normal", 0, 0, start),
	}, resolver, st)

	if rows := BuildMuscleDistribution(sets, ViewWeek, MetricSets, st, now); len(rows) != 0 {
		t.Errorf("unmapped muscle produced %d coarse rows, want 0", len(rows))
	}
}
