package engine

import "github.com/claude/liftstats/internal/models"

// Effectiveness assigns a set its contribution factor and bodyweight-adjusted
// weight. The factor is 0 for warmups, the configured drop/myo factor for
// drop and myo sets, and 1 otherwise. The adjusted weight corrects
// assisted-bodyweight movements (body weight minus assistance) and
// weighted-bodyweight movements (body weight plus added load) when the
// bodyweight-inclusion policy and a body weight are available.
func Effectiveness(kind models.SetKind, format string, weightKg, bodyWeightKg float64, st Settings) (factor, adjustedWeightKg float64) {
	switch kind {
	case models.SetWarmup:
		factor = 0
	case models.SetDropOrMyo:
		factor = st.DropSetFactor
	default:
		factor = 1
	}

	adjustedWeightKg = weightKg
	if st.IncludeBodyweight {
		bw := bodyWeightKg
		if bw == 0 {
			bw = st.BodyWeightKg
		}
		if bw > 0 {
			switch format {
			case models.FormatAssistedBodyweight:
				adjustedWeightKg = bw - weightKg
			case models.FormatWeightedBodyweight:
				adjustedWeightKg = bw + weightKg
			}
		}
	}
	return factor, adjustedWeightKg
}

// MetricEffectiveness derives the pair that feeds all downstream
// aggregation: identical to Effectiveness, except that warmup sets are
// forced to full contribution when the include-warmups policy is on. This
// way the warmup toggle affects every metric consistently.
func MetricEffectiveness(kind models.SetKind, format string, weightKg, bodyWeightKg float64, st Settings) (factor, adjustedWeightKg float64) {
	factor, adjustedWeightKg = Effectiveness(kind, format, weightKg, bodyWeightKg, st)
	if kind == models.SetWarmup && st.IncludeWarmupSets {
		factor = 1
	}
	return factor, adjustedWeightKg
}
