package engine

import (
	"sort"
	"time"
)

// PeriodBucket is one row of the period summary. Every slot of the trailing
// window is present, zero-valued when nothing was trained.
type PeriodBucket struct {
	PeriodStart   time.Time `json:"period_start"`
	Workouts      int       `json:"workouts"`
	DurationHours float64   `json:"duration_hours"`
	Volume        float64   `json:"volume"`
	EffectiveSets float64   `json:"effective_sets"`
}

// Metric selects which quantity a muscle distribution reports.
type Metric string

const (
	MetricWorkouts Metric = "workouts"
	MetricDuration Metric = "duration"
	MetricVolume   Metric = "volume"
	MetricSets     Metric = "sets"
)

// DistributionRow is one (period, group[, fine muscle]) cell of a muscle
// distribution for the selected metric.
type DistributionRow struct {
	PeriodStart time.Time `json:"period_start"`
	MuscleGroup string    `json:"muscle_group"`
	FineMuscle  string    `json:"fine_muscle,omitempty"`
	Value       float64   `json:"value"`
}

// workoutInfo caches per-workout facts shared by the aggregations: the
// period key, and the duration counted once regardless of set count.
type workoutInfo struct {
	period        time.Time
	durationHours float64
}

func collectWorkouts(sets []CanonicalSet, view ViewMode) map[string]*workoutInfo {
	workouts := make(map[string]*workoutInfo)
	for _, s := range sets {
		if _, ok := workouts[s.WorkoutID]; ok {
			continue
		}
		// Duration comes from the first-seen start/end pair of the id.
		hours := s.EndTime.Sub(s.StartTime).Hours()
		if hours < 0 {
			hours = 0
		}
		workouts[s.WorkoutID] = &workoutInfo{period: s.PeriodKey(view), durationHours: hours}
	}
	return workouts
}

// BuildPeriodSummary reduces canonical sets into one row per trailing-window
// period: unique workouts, duration hours (counted once per workout), metric
// volume and metric set count. Missing periods are zero-filled, never
// dropped.
func BuildPeriodSummary(sets []CanonicalSet, view ViewMode, st Settings, now time.Time) []PeriodBucket {
	window := TrailingWindow(sets, view, st, now)
	buckets := make(map[time.Time]*PeriodBucket, len(window))
	out := make([]PeriodBucket, len(window))
	for i, p := range window {
		out[i] = PeriodBucket{PeriodStart: p}
		buckets[p] = &out[i]
	}

	for _, w := range collectWorkouts(sets, view) {
		if b, ok := buckets[w.period]; ok {
			b.Workouts++
			b.DurationHours += w.durationHours
		}
	}

	for _, s := range sets {
		if b, ok := buckets[s.PeriodKey(view)]; ok {
			b.Volume += s.MetricSetVolume
			b.EffectiveSets += s.MetricSetFactor
		}
	}

	return out
}

// BuildMuscleDistribution reduces canonical sets into one row per
// (period, coarse group) for the selected metric. Only window periods are
// reported; groups with no activity in a period are absent rather than
// zero-filled, matching how the distribution is rendered.
func BuildMuscleDistribution(sets []CanonicalSet, view ViewMode, metric Metric, st Settings, now time.Time) []DistributionRow {
	return buildDistribution(sets, view, metric, st, now, false)
}

// BuildFineMuscleDistribution is the finer variant keyed by
// (period, coarse group, fine muscle). Inclusion-rule credits appear here.
func BuildFineMuscleDistribution(sets []CanonicalSet, view ViewMode, metric Metric, st Settings, now time.Time) []DistributionRow {
	return buildDistribution(sets, view, metric, st, now, true)
}

type distKey struct {
	period time.Time
	group  string
	fine   string
}

func buildDistribution(sets []CanonicalSet, view ViewMode, metric Metric, st Settings, now time.Time, fine bool) []DistributionRow {
	st = st.Normalize()
	window := TrailingWindow(sets, view, st, now)
	inWindow := make(map[time.Time]bool, len(window))
	for _, p := range window {
		inWindow[p] = true
	}

	values := make(map[distKey]float64)
	// For the workouts metric: distinct workout ids per key.
	workoutSeen := make(map[distKey]map[string]bool)
	// For the duration metric: distinct keys trained per workout.
	workoutKeys := make(map[string]map[distKey]bool)

	keyOf := func(period time.Time, a Attribution) (distKey, bool) {
		if a.Group == "" {
			return distKey{}, false
		}
		if !fine && a.FineOnly {
			return distKey{}, false
		}
		k := distKey{period: period, group: a.Group}
		if fine {
			k.fine = a.Fine
		}
		return k, true
	}

	for _, s := range sets {
		period := s.PeriodKey(view)
		if !inWindow[period] {
			continue
		}
		for _, a := range Attribute(s, st) {
			k, ok := keyOf(period, a)
			if !ok {
				continue
			}
			// A zero-weight credit (secondary factor 0) does not mark the
			// group as trained.
			if a.Weight == 0 && (metric == MetricWorkouts || metric == MetricDuration) {
				continue
			}
			switch metric {
			case MetricWorkouts:
				ids := workoutSeen[k]
				if ids == nil {
					ids = make(map[string]bool)
					workoutSeen[k] = ids
				}
				ids[s.WorkoutID] = true
			case MetricDuration:
				keys := workoutKeys[s.WorkoutID]
				if keys == nil {
					keys = make(map[distKey]bool)
					workoutKeys[s.WorkoutID] = keys
				}
				keys[k] = true
			case MetricVolume:
				values[k] += a.Weight * s.MetricSetVolume
			case MetricSets:
				values[k] += a.Weight * s.MetricSetFactor
			}
		}
	}

	switch metric {
	case MetricWorkouts:
		for k, ids := range workoutSeen {
			values[k] = float64(len(ids))
		}
	case MetricDuration:
		// A workout's duration is split evenly over the distinct groups it
		// trained, so summing across groups recovers it exactly once.
		workouts := collectWorkouts(sets, view)
		for id, keys := range workoutKeys {
			w := workouts[id]
			if w == nil || len(keys) == 0 {
				continue
			}
			share := w.durationHours / float64(len(keys))
			for k := range keys {
				values[k] += share
			}
		}
	}

	rows := make([]DistributionRow, 0, len(values))
	for k, v := range values {
		rows = append(rows, DistributionRow{PeriodStart: k.period, MuscleGroup: k.group, FineMuscle: k.fine, Value: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].PeriodStart.Equal(rows[j].PeriodStart) {
			return rows[i].PeriodStart.Before(rows[j].PeriodStart)
		}
		if rows[i].MuscleGroup != rows[j].MuscleGroup {
			return rows[i].MuscleGroup < rows[j].MuscleGroup
		}
		return rows[i].FineMuscle < rows[j].FineMuscle
	})
	return rows
}
