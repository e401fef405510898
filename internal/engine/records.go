package engine

import (
	"sort"
	"time"
)

// brzycki1RMMaxReps bounds the estimation formula's domain: the denominator
// (37 − reps) must stay positive. Sets at or beyond the bound are excluded
// from 1RM estimation, never clamped.
const brzycki1RMMaxReps = 36

// repMaxTableSize is the highest rep count the rep-max table reports.
const repMaxTableSize = 15

// Estimate1RM estimates a one-rep max from a sub-maximal weight × reps pair
// using the Brzycki formula. ok is false when reps is outside [1, 36].
func Estimate1RM(weightKg float64, reps int) (float64, bool) {
	if reps < 1 || reps > brzycki1RMMaxReps {
		return 0, false
	}
	return weightKg * 36 / float64(37-reps), true
}

// ExercisePeriodStats is the per-(period, exercise) rollup.
type ExercisePeriodStats struct {
	PeriodStart      time.Time `json:"period_start"`
	ExerciseTitle    string    `json:"exercise_title"`
	EffectiveSets    float64   `json:"effective_sets"`
	TotalReps        int       `json:"total_reps"`
	HeaviestWeightKg float64   `json:"heaviest_weight_kg"`
	BestSetVolumeKg  float64   `json:"best_set_volume_kg"`
	SessionVolumeKg  float64   `json:"session_volume_kg"`
	BestEst1RMKg     float64   `json:"best_est_1rm_kg"`
}

// BuildExerciseStats computes per-period, per-exercise rollups over the
// trailing window, sorted by period then exercise title. Sets whose metric
// factor is zero (excluded warmups) do not contribute.
func BuildExerciseStats(sets []CanonicalSet, view ViewMode, st Settings, now time.Time) []ExercisePeriodStats {
	window := TrailingWindow(sets, view, st, now)
	inWindow := make(map[time.Time]bool, len(window))
	for _, p := range window {
		inWindow[p] = true
	}

	type key struct {
		period   time.Time
		exercise string
	}
	stats := make(map[key]*ExercisePeriodStats)

	for _, s := range sets {
		period := s.PeriodKey(view)
		if !inWindow[period] || s.MetricSetFactor == 0 {
			continue
		}
		k := key{period: period, exercise: s.ExerciseTitle}
		e := stats[k]
		if e == nil {
			e = &ExercisePeriodStats{PeriodStart: period, ExerciseTitle: s.ExerciseTitle}
			stats[k] = e
		}

		e.EffectiveSets += s.MetricSetFactor
		e.TotalReps += s.Reps
		e.SessionVolumeKg += s.MetricSetVolume
		if s.AdjustedWeightKg > e.HeaviestWeightKg {
			e.HeaviestWeightKg = s.AdjustedWeightKg
		}
		if s.MetricSetVolume > e.BestSetVolumeKg {
			e.BestSetVolumeKg = s.MetricSetVolume
		}
		if est, ok := Estimate1RM(s.AdjustedWeightKg, s.Reps); ok && est > e.BestEst1RMKg {
			e.BestEst1RMKg = est
		}
	}

	out := make([]ExercisePeriodStats, 0, len(stats))
	for _, e := range stats {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PeriodStart.Equal(out[j].PeriodStart) {
			return out[i].PeriodStart.Before(out[j].PeriodStart)
		}
		return out[i].ExerciseTitle < out[j].ExerciseTitle
	})
	return out
}

// RepMaxEntry is the heaviest weight ever lifted at exactly Reps reps.
type RepMaxEntry struct {
	Reps     int       `json:"reps"`
	WeightKg float64   `json:"weight_kg"`
	Date     time.Time `json:"date"`
}

// PersonalRecords are all-time records for one exercise, scanned across all
// periods independently of any window.
type PersonalRecords struct {
	ExerciseTitle string `json:"exercise_title"`

	HeaviestWeightKg   float64   `json:"heaviest_weight_kg"`
	HeaviestWeightDate time.Time `json:"heaviest_weight_date"`

	Best1RMKg       float64   `json:"best_1rm_kg"`
	Best1RMWeightKg float64   `json:"best_1rm_weight_kg"`
	Best1RMReps     int       `json:"best_1rm_reps"`
	Best1RMDate     time.Time `json:"best_1rm_date"`

	BestSetVolumeKg   float64   `json:"best_set_volume_kg"`
	BestSetVolumeDate time.Time `json:"best_set_volume_date"`

	BestSessionVolumeKg   float64   `json:"best_session_volume_kg"`
	BestSessionVolumeDate time.Time `json:"best_session_volume_date"`

	RepMaxes []RepMaxEntry `json:"rep_maxes,omitempty"`
}

// BuildPersonalRecords computes all-time records per exercise, sorted by
// exercise title. Excluded warmups (metric factor zero) set no records.
func BuildPersonalRecords(sets []CanonicalSet) []PersonalRecords {
	byExercise := make(map[string]*PersonalRecords)
	repMax := make(map[string]map[int]RepMaxEntry)
	sessionVolume := make(map[string]map[string]float64)  // exercise -> workout id -> volume
	sessionDate := make(map[string]map[string]time.Time)

	for _, s := range sets {
		if s.MetricSetFactor == 0 {
			continue
		}
		pr := byExercise[s.ExerciseTitle]
		if pr == nil {
			pr = &PersonalRecords{ExerciseTitle: s.ExerciseTitle}
			byExercise[s.ExerciseTitle] = pr
			repMax[s.ExerciseTitle] = make(map[int]RepMaxEntry)
			sessionVolume[s.ExerciseTitle] = make(map[string]float64)
			sessionDate[s.ExerciseTitle] = make(map[string]time.Time)
		}
		date := s.StartTime

		if s.AdjustedWeightKg > pr.HeaviestWeightKg {
			pr.HeaviestWeightKg = s.AdjustedWeightKg
			pr.HeaviestWeightDate = date
		}
		if est, ok := Estimate1RM(s.AdjustedWeightKg, s.Reps); ok && est > pr.Best1RMKg {
			pr.Best1RMKg = est
			pr.Best1RMWeightKg = s.AdjustedWeightKg
			pr.Best1RMReps = s.Reps
			pr.Best1RMDate = date
		}
		if s.MetricSetVolume > pr.BestSetVolumeKg {
			pr.BestSetVolumeKg = s.MetricSetVolume
			pr.BestSetVolumeDate = date
		}

		sessionVolume[s.ExerciseTitle][s.WorkoutID] += s.MetricSetVolume
		sessionDate[s.ExerciseTitle][s.WorkoutID] = date

		if s.Reps >= 1 && s.Reps <= repMaxTableSize {
			cur, ok := repMax[s.ExerciseTitle][s.Reps]
			if !ok || s.AdjustedWeightKg > cur.WeightKg {
				repMax[s.ExerciseTitle][s.Reps] = RepMaxEntry{Reps: s.Reps, WeightKg: s.AdjustedWeightKg, Date: date}
			}
		}
	}

	out := make([]PersonalRecords, 0, len(byExercise))
	for name, pr := range byExercise {
		for id, vol := range sessionVolume[name] {
			if vol > pr.BestSessionVolumeKg {
				pr.BestSessionVolumeKg = vol
				pr.BestSessionVolumeDate = sessionDate[name][id]
			}
		}
		for reps := 1; reps <= repMaxTableSize; reps++ {
			if entry, ok := repMax[name][reps]; ok {
				pr.RepMaxes = append(pr.RepMaxes, entry)
			}
		}
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExerciseTitle < out[j].ExerciseTitle })
	return out
}
