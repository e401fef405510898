// Package units normalizes heterogeneous weight, body-weight, distance and
// range-of-motion columns into canonical metric units (kg, km, cm). Which
// unit a source used is detected from its column name; the original column
// and unit are kept as provenance for display.
package units

import "strings"

// Fixed conversion constants.
const (
	LbPerKg = 2.2046226218487757
	MiPerKm = 0.6213711922373339
	InPerCm = 0.39370078740157477
)

// Canonical metric units.
const (
	UnitKg = "kg"
	UnitLb = "lb"
	UnitKm = "km"
	UnitMi = "mi"
	UnitCm = "cm"
	UnitIn = "in"
)

// Provenance records where a normalized quantity came from.
type Provenance struct {
	RawColumn      string `json:"raw_column"`
	RawUnit        string `json:"raw_unit"`
	NormalizedUnit string `json:"normalized_unit"`
}

// Detection holds the per-quantity provenance for one tabular dataset.
// A nil entry means the quantity is absent from the source; that is never
// an error — the canonical column simply stays empty.
type Detection struct {
	Weight        *Provenance `json:"weight,omitempty"`
	BodyWeight    *Provenance `json:"body_weight,omitempty"`
	Distance      *Provenance `json:"distance,omitempty"`
	RangeOfMotion *Provenance `json:"range_of_motion,omitempty"`
}

type columnAlias struct {
	column string
	unit   string
}

// Alias tables, ordered by preference. A bare column name without a unit
// suffix is read as already-metric.
var (
	weightAliases = []columnAlias{
		{"weight_kg", UnitKg},
		{"weight_lbs", UnitLb},
		{"weight_lb", UnitLb},
		{"weight", UnitKg},
	}
	bodyWeightAliases = []columnAlias{
		{"body_weight_kg", UnitKg},
		{"body_weight_lbs", UnitLb},
		{"body_weight_lb", UnitLb},
		{"body_weight", UnitKg},
		{"bodyweight_kg", UnitKg},
		{"bodyweight", UnitKg},
	}
	distanceAliases = []columnAlias{
		{"distance_km", UnitKm},
		{"distance_miles", UnitMi},
		{"distance_mi", UnitMi},
		{"distance", UnitKm},
	}
	romAliases = []columnAlias{
		{"range_of_motion_cm", UnitCm},
		{"range_of_motion_in", UnitIn},
		{"rom_cm", UnitCm},
		{"rom_in", UnitIn},
	}
)

// Detect matches a dataset header against the known column aliases and
// returns the provenance of every quantity that is present.
func Detect(header []string) Detection {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	find := func(aliases []columnAlias, canonical string) *Provenance {
		for _, a := range aliases {
			if present[a.column] {
				return &Provenance{RawColumn: a.column, RawUnit: a.unit, NormalizedUnit: canonical}
			}
		}
		return nil
	}

	return Detection{
		Weight:        find(weightAliases, UnitKg),
		BodyWeight:    find(bodyWeightAliases, UnitKg),
		Distance:      find(distanceAliases, UnitKm),
		RangeOfMotion: find(romAliases, UnitCm),
	}
}

// ToKg converts a weight in the given source unit to kilograms.
func ToKg(v float64, unit string) float64 {
	if unit == UnitLb {
		return v / LbPerKg
	}
	return v
}

// ToKm converts a distance in the given source unit to kilometers.
func ToKm(v float64, unit string) float64 {
	if unit == UnitMi {
		return v / MiPerKm
	}
	return v
}

// ToCm converts a length in the given source unit to centimeters.
func ToCm(v float64, unit string) float64 {
	if unit == UnitIn {
		return v / InPerCm
	}
	return v
}

// KgToLb and KmToMi convert canonical metric values back to imperial for
// display. All internal math stays metric.
func KgToLb(kg float64) float64 { return kg * LbPerKg }

func KmToMi(km float64) float64 { return km * MiPerKm }
