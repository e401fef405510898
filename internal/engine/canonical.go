package engine

import (
	"time"

	"github.com/claude/liftstats/internal/models"
)

// ExerciseResolver answers exercise catalog lookups. Satisfied by
// *catalog.Resolver; the engine only needs the read side.
type ExerciseResolver interface {
	Resolve(name string) models.CatalogEntry
}

// CanonicalSet is a RawSet after normalization, attribution and weighting.
// It is a pure, stateless derivation recomputed whenever settings change;
// nothing downstream mutates it.
type CanonicalSet struct {
	models.RawSet

	Format           string  `json:"format,omitempty"`
	AdjustedWeightKg float64 `json:"adjusted_weight_kg"`

	// Unweighted contribution in [0,1].
	EffectiveSetFactor float64 `json:"effective_set_factor"`

	// The pair all aggregation consumes: same as the effective pair except
	// warmups count fully under the include-warmups policy.
	MetricSetFactor float64 `json:"metric_set_factor"`
	MetricSetVolume float64 `json:"metric_set_volume"`

	PrimaryMuscle    string   `json:"primary_muscle,omitempty"` // fine
	PrimaryGroup     string   `json:"primary_group,omitempty"`  // coarse, "" when unmapped
	SecondaryMuscles []string `json:"secondary_muscles,omitempty"`

	WeekPeriod  time.Time `json:"week_period"`
	MonthPeriod time.Time `json:"month_period"`
}

// BuildCanonical derives canonical sets from raw sets under the given
// catalog and settings. The input order is preserved.
func BuildCanonical(sets []models.RawSet, resolver ExerciseResolver, st Settings) []CanonicalSet {
	st = st.Normalize()
	out := make([]CanonicalSet, 0, len(sets))
	for _, raw := range sets {
		entry := resolver.Resolve(raw.ExerciseTitle)

		effFactor, adjusted := Effectiveness(raw.Kind, entry.Format, raw.WeightKg, raw.BodyWeightKg, st)
		metricFactor, _ := MetricEffectiveness(raw.Kind, entry.Format, raw.WeightKg, raw.BodyWeightKg, st)

		c := CanonicalSet{
			RawSet:             raw,
			Format:             entry.Format,
			AdjustedWeightKg:   adjusted,
			EffectiveSetFactor: effFactor,
			MetricSetFactor:    metricFactor,
			MetricSetVolume:    metricFactor * adjusted * float64(raw.Reps),
			PrimaryMuscle:      entry.PrimaryMuscle,
			SecondaryMuscles:   entry.OtherMuscles,
			WeekPeriod:         WeekStartOf(raw.StartTime, st.weekStartWeekday()),
			MonthPeriod:        MonthStartOf(raw.StartTime),
		}
		if g, ok := CoarseGroup(entry.PrimaryMuscle); ok {
			c.PrimaryGroup = g
		}
		out = append(out, c)
	}
	return out
}

// PeriodKey returns the bucket key of a canonical set for the given view.
func (c CanonicalSet) PeriodKey(view ViewMode) time.Time {
	if view == ViewMonth {
		return c.MonthPeriod
	}
	return c.WeekPeriod
}
