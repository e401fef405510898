// Package engine turns RawSet rows into time-bucketed, muscle-attributed
// training metrics: period summaries, muscle distributions, per-exercise
// statistics and personal records. Every function is a pure read of
// (sets, catalog, Settings) — configuration is always passed in, never read
// from ambient state, so a settings change is just a recompute.
package engine

import (
	"strings"
	"time"
)

// ViewMode selects weekly or monthly bucketing.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// Trailing window lengths per view.
const (
	WeekWindowPeriods  = 16
	MonthWindowPeriods = 12
)

// Week start policies.
const (
	WeekStartMonday = "Monday"
	WeekStartSunday = "Sunday"
)

// Settings is the live engine configuration. Unit preferences affect display
// conversion only; all internal math is metric.
type Settings struct {
	WeightUnit            string  `json:"weight_unit" yaml:"weight_unit"`       // kg | lb
	DistanceUnit          string  `json:"distance_unit" yaml:"distance_unit"`   // km | mi
	WeekStart             string  `json:"week_start" yaml:"week_start"`         // Monday | Sunday
	IncludeWarmupSets     bool    `json:"include_warmup_sets" yaml:"include_warmup_sets"`
	SecondaryMuscleFactor float64 `json:"secondary_muscle_factor" yaml:"secondary_muscle_factor"`
	DropSetFactor         float64 `json:"drop_set_factor" yaml:"drop_set_factor"`
	IncludeBodyweight     bool    `json:"include_bodyweight" yaml:"include_bodyweight"`
	BodyWeightKg          float64 `json:"body_weight_kg" yaml:"body_weight_kg"`
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		WeightUnit:            "kg",
		DistanceUnit:          "km",
		WeekStart:             WeekStartMonday,
		SecondaryMuscleFactor: 0.5,
		DropSetFactor:         0.5,
	}
}

// Normalize clamps factors into [0,1] and fills empty enum fields with
// defaults, so a partially-populated settings object is always usable.
func (s Settings) Normalize() Settings {
	if s.WeightUnit != "lb" {
		s.WeightUnit = "kg"
	}
	if s.DistanceUnit != "mi" {
		s.DistanceUnit = "km"
	}
	if !strings.EqualFold(s.WeekStart, WeekStartSunday) {
		s.WeekStart = WeekStartMonday
	} else {
		s.WeekStart = WeekStartSunday
	}
	s.SecondaryMuscleFactor = clamp01(s.SecondaryMuscleFactor)
	s.DropSetFactor = clamp01(s.DropSetFactor)
	if s.BodyWeightKg < 0 {
		s.BodyWeightKg = 0
	}
	return s
}

func (s Settings) weekStartWeekday() time.Weekday {
	if strings.EqualFold(s.WeekStart, WeekStartSunday) {
		return time.Sunday
	}
	return time.Monday
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
