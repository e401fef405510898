// Package ingest holds the shared contract of the source ingestion adapters:
// every adapter produces canonical RawSet rows plus a Result summary, with
// duplicate workouts and sets dropped silently but counted.
package ingest

import (
	"strconv"

	"github.com/claude/liftstats/internal/models"
)

// Result is the ingestion summary returned alongside the RawSet rows.
// Duplicates are diagnostics, never failures.
type Result struct {
	TotalSets            int      `json:"total_sets"`
	WorkoutsCount        int      `json:"workouts_count"`
	SkippedDuplicateSets int      `json:"skipped_duplicate_sets"`
	DuplicateWorkoutIDs  []string `json:"duplicate_workout_ids,omitempty"`
	Message              string   `json:"message,omitempty"`
}

// Collector accumulates RawSet rows while enforcing the dedup rules both
// adapters share: a workout id is unique, and within a workout a set is
// identified by its source id when present, else by exercise + set index.
type Collector struct {
	sets         []models.RawSet
	workoutSeen  map[string]bool
	setSeen      map[string]map[string]bool
	dupWorkouts  []string
	dupWorkoutID map[string]bool
	skippedSets  int
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		workoutSeen:  make(map[string]bool),
		setSeen:      make(map[string]map[string]bool),
		dupWorkoutID: make(map[string]bool),
	}
}

// BeginWorkout registers a workout id and reports whether it is new.
// A repeated id is dropped entirely after the first occurrence — the caller
// must skip all of its sets. Used by the remote adapter where workouts
// arrive as whole objects.
func (c *Collector) BeginWorkout(id string) bool {
	if c.workoutSeen[id] {
		if !c.dupWorkoutID[id] {
			c.dupWorkoutID[id] = true
			c.dupWorkouts = append(c.dupWorkouts, id)
		}
		return false
	}
	c.workoutSeen[id] = true
	return true
}

// Add appends a set unless it duplicates an already-collected set of the
// same workout. Returns whether the set was kept.
func (c *Collector) Add(s models.RawSet) bool {
	keys := c.setSeen[s.WorkoutID]
	if keys == nil {
		keys = make(map[string]bool)
		c.setSeen[s.WorkoutID] = keys
		c.workoutSeen[s.WorkoutID] = true
	}
	key := s.DedupKey()
	if keys[key] {
		c.skippedSets++
		return false
	}
	keys[key] = true
	c.sets = append(c.sets, s)
	return true
}

// MergeStored deduplicates rows loaded from overlapping datasets, e.g. the
// same workout imported once from a CSV export and once from the remote API.
// Source set ids are not comparable across sources, so the positional
// (exercise, set index) key is used for every row. First occurrence wins.
func MergeStored(sets []models.RawSet) []models.RawSet {
	seen := make(map[string]map[string]bool)
	out := make([]models.RawSet, 0, len(sets))
	for _, s := range sets {
		keys := seen[s.WorkoutID]
		if keys == nil {
			keys = make(map[string]bool)
			seen[s.WorkoutID] = keys
		}
		key := s.ExerciseTitle + "#" + strconv.Itoa(s.SetIndex)
		if keys[key] {
			continue
		}
		keys[key] = true
		out = append(out, s)
	}
	return out
}

// Finish returns the collected rows and the ingestion summary.
func (c *Collector) Finish() ([]models.RawSet, Result) {
	workouts := make(map[string]bool)
	for _, s := range c.sets {
		workouts[s.WorkoutID] = true
	}
	return c.sets, Result{
		TotalSets:            len(c.sets),
		WorkoutsCount:        len(workouts),
		SkippedDuplicateSets: c.skippedSets,
		DuplicateWorkoutIDs:  c.dupWorkouts,
	}
}
