package engine

import (
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
)

// mapResolver backs tests with a fixed catalog.
type mapResolver map[string]models.CatalogEntry

func (m mapResolver) Resolve(name string) models.CatalogEntry {
	if e, ok := m[name]; ok {
		return e
	}
	return models.CatalogEntry{ExerciseTitle: name}
}

var testCatalog = mapResolver{
	"Bench Press (Barbell)": {
		ExerciseTitle: "Bench Press (Barbell)",
		PrimaryMuscle: "Chest",
		OtherMuscles:  []string{"Triceps", "Shoulders"},
		Format:        models.FormatWeightReps,
	},
	"Pull-ups (Assisted)": {
		ExerciseTitle: "Pull-ups (Assisted)",
		PrimaryMuscle: "Lats",
		OtherMuscles:  []string{"Biceps", "Upper Back"},
		Format:        models.FormatAssistedBodyweight,
	},
	"Chest Dip": {
		ExerciseTitle: "Chest Dip",
		PrimaryMuscle: "Chest",
		OtherMuscles:  []string{"Triceps"},
		Format:        models.FormatWeightedBodyweight,
	},
	"Squat (Barbell)": {
		ExerciseTitle: "Squat (Barbell)",
		PrimaryMuscle: "Quadriceps",
		OtherMuscles:  []string{"Glutes", "Hamstrings"},
		Format:        models.FormatWeightReps,
	},
	"Bent Over Row (Barbell)": {
		ExerciseTitle: "Bent Over Row (Barbell)",
		PrimaryMuscle: "Upper Back",
		OtherMuscles:  []string{"Lats", "Biceps"},
		Format:        models.FormatWeightReps,
	},
}

func rawSet(exercise, setType string, weight float64, reps int, start time.Time) models.RawSet {
	return models.RawSet{
		WorkoutID:     models.WorkoutID("Session", start),
		WorkoutTitle:  "Session",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		ExerciseTitle: exercise,
		SetType:       setType,
		Kind:          models.ClassifySetType(setType),
		WeightKg:      weight,
		Reps:          reps,
	}
}

// The canonical bench-press scenario: warmup 40x10, normal 100x5,
// dropset 80x8 with warmups excluded and a 0.5 drop factor.
func TestBenchPressScenario(t *testing.T) {
	st := DefaultSettings() // include_warmup_sets=false, drop_set_factor=0.5
	start := time.Date(2026, 8, 3, 17, 0, 0, 0, time.UTC)

	raw := []models.RawSet{
		rawSet("Bench Press (Barbell)", "warmup", 40, 10, start),
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
		rawSet("Bench Press (Barbell)", "dropset", 80, 8, start),
	}
	sets := BuildCanonical(raw, testCatalog, st)

	wantFactors := []float64{0, 1.0, 0.5}
	wantVolumes := []float64{0, 500, 320}
	for i, s := range sets {
		if s.MetricSetFactor != wantFactors[i] {
			t.Errorf("set %d metric factor = %v, want %v", i, s.MetricSetFactor, wantFactors[i])
		}
		if s.MetricSetVolume != wantVolumes[i] {
			t.Errorf("set %d metric volume = %v, want %v", i, s.MetricSetVolume, wantVolumes[i])
		}
	}
}

func TestMetricFactorRange(t *testing.T) {
	kinds := []models.SetKind{models.SetNormal, models.SetWarmup, models.SetDropOrMyo}
	for _, includeWarmups := range []bool{false, true} {
		st := DefaultSettings()
		st.IncludeWarmupSets = includeWarmups
		for _, kind := range kinds {
			f, _ := MetricEffectiveness(kind, models.FormatWeightReps, 100, 0, st)
			if f < 0 || f > 1 {
				t.Errorf("kind %v include=%v: factor %v out of [0,1]", kind, includeWarmups, f)
			}
			if kind == models.SetWarmup && includeWarmups && f != 1 {
				t.Errorf("included warmup factor = %v, want 1", f)
			}
			if kind == models.SetWarmup && !includeWarmups && f != 0 {
				t.Errorf("excluded warmup factor = %v, want 0", f)
			}
		}
	}
}

func TestAdjustedWeightBodyweightFormats(t *testing.T) {
	st := DefaultSettings()
	st.IncludeBodyweight = true

	// Assisted: 80 kg body weight with 20 kg assistance lifts 60 kg.
	_, adj := Effectiveness(models.SetNormal, models.FormatAssistedBodyweight, 20, 80, st)
	if adj != 60 {
		t.Errorf("assisted adjusted weight = %v, want 60", adj)
	}

	// Weighted: 80 kg body weight plus 20 kg plate lifts 100 kg.
	_, adj = Effectiveness(models.SetNormal, models.FormatWeightedBodyweight, 20, 80, st)
	if adj != 100 {
		t.Errorf("weighted adjusted weight = %v, want 100", adj)
	}

	// Without a recorded body weight, the configured default applies.
	st.BodyWeightKg = 75
	_, adj = Effectiveness(models.SetNormal, models.FormatWeightedBodyweight, 10, 0, st)
	if adj != 85 {
		t.Errorf("default-bodyweight adjusted = %v, want 85", adj)
	}

	// Policy off: the recorded weight passes through untouched.
	st.IncludeBodyweight = false
	_, adj = Effectiveness(models.SetNormal, models.FormatAssistedBodyweight, 20, 80, st)
	if adj != 20 {
		t.Errorf("policy-off adjusted = %v, want 20", adj)
	}

	// Plain barbell work never gets corrected.
	st.IncludeBodyweight = true
	_, adj = Effectiveness(models.SetNormal, models.FormatWeightReps, 100, 80, st)
	if adj != 100 {
		t.Errorf("weight_reps adjusted = %v, want 100", adj)
	}
}

func TestDropSetFactorConfigurable(t *testing.T) {
	st := DefaultSettings()
	st.DropSetFactor = 0.25
	f, _ := MetricEffectiveness(models.SetDropOrMyo, models.FormatWeightReps, 80, 0, st)
	if f != 0.25 {
		t.Errorf("drop factor = %v, want 0.25", f)
	}
	f, _ = MetricEffectiveness(models.ClassifySetType("myo"), models.FormatWeightReps, 80, 0, st)
	if f != 0.25 {
		t.Errorf("myo factor = %v, want 0.25", f)
	}
}
