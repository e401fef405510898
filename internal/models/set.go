package models

import (
	"strconv"
	"strings"
	"time"
)

// SetKind classifies a set by its set-type label. The label is matched once
// at ingestion so downstream aggregation never repeats substring tests.
type SetKind int

const (
	SetNormal SetKind = iota
	SetWarmup
	SetDropOrMyo
)

func (k SetKind) String() string {
	switch k {
	case SetWarmup:
		return "warmup"
	case SetDropOrMyo:
		return "drop_or_myo"
	default:
		return "normal"
	}
}

// ClassifySetType maps a raw set-type label (normal, warmup, dropset, myo,
// failure, ...) to a SetKind. Unknown labels count as normal sets.
func ClassifySetType(label string) SetKind {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "warm"):
		return SetWarmup
	case strings.Contains(l, "drop"), strings.Contains(l, "myo"):
		return SetDropOrMyo
	default:
		return SetNormal
	}
}

// RawSet is one logged set in canonical row shape, as produced by an
// ingestion adapter. Weights are kilograms and distances kilometers after
// unit normalization. A RawSet is created once at ingestion and never
// mutated afterwards.
type RawSet struct {
	WorkoutID    string    `json:"workout_id"`
	WorkoutTitle string    `json:"workout_title"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`

	ExerciseTitle string  `json:"exercise_title"`
	SetIndex      int     `json:"set_index"`
	SetID         string  `json:"set_id,omitempty"` // source-assigned unique id, may be empty
	SetType       string  `json:"set_type"`
	Kind          SetKind `json:"-"`

	WeightKg     float64 `json:"weight_kg"`
	Reps         int     `json:"reps"`
	BodyWeightKg float64 `json:"body_weight_kg,omitempty"` // 0 when not recorded
	DurationSec  float64 `json:"duration_seconds,omitempty"`
	DistanceKm   float64 `json:"distance_km,omitempty"`
}

// WorkoutIDTimeLayout is the timestamp component of a workout id.
const WorkoutIDTimeLayout = "2006-01-02T15:04:05"

// WorkoutID derives the identity of a workout from its title and exact start
// time. Two RawSet rows with the same workout id belong to the same session.
func WorkoutID(title string, start time.Time) string {
	return title + "|" + start.Format(WorkoutIDTimeLayout)
}

// DedupKey returns the key used to detect duplicate sets within one workout:
// the source set id when present, else exercise title + set index. The
// fallback can over-deduplicate when an exercise appears twice in the same
// workout with reused indices.
func (s RawSet) DedupKey() string {
	if s.SetID != "" {
		return "id:" + s.SetID
	}
	return s.ExerciseTitle + "#" + strconv.Itoa(s.SetIndex)
}
