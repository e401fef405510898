package units

import (
	"math"
	"testing"
)

func TestDetectMetricColumns(t *testing.T) {
	header := []string{"title", "start_time", "exercise_title", "weight_kg", "reps", "distance_km"}
	d := Detect(header)

	if d.Weight == nil {
		t.Fatal("weight not detected")
	}
	if d.Weight.RawColumn != "weight_kg" || d.Weight.RawUnit != UnitKg || d.Weight.NormalizedUnit != UnitKg {
		t.Errorf("weight provenance = %+v", *d.Weight)
	}
	if d.Distance == nil {
		t.Fatal("distance not detected")
	}
	if d.Distance.RawUnit != UnitKm {
		t.Errorf("distance raw unit = %q, want km", d.Distance.RawUnit)
	}
	if d.BodyWeight != nil {
		t.Errorf("body weight detected from %+v, want nil", *d.BodyWeight)
	}
	if d.RangeOfMotion != nil {
		t.Errorf("range of motion detected, want nil")
	}
}

func TestDetectImperialColumns(t *testing.T) {
	header := []string{"Title", "WEIGHT_LBS", "distance_miles", "body_weight_lbs"}
	d := Detect(header)

	if d.Weight == nil || d.Weight.RawColumn != "weight_lbs" || d.Weight.RawUnit != UnitLb {
		t.Errorf("weight = %+v, want weight_lbs/lb", d.Weight)
	}
	if d.Weight.NormalizedUnit != UnitKg {
		t.Errorf("normalized unit = %q, want kg", d.Weight.NormalizedUnit)
	}
	if d.Distance == nil || d.Distance.RawUnit != UnitMi {
		t.Errorf("distance = %+v, want miles", d.Distance)
	}
	if d.BodyWeight == nil || d.BodyWeight.RawUnit != UnitLb {
		t.Errorf("body weight = %+v, want lbs", d.BodyWeight)
	}
}

func TestDetectPrefersUnitSuffixedColumn(t *testing.T) {
	// When both a suffixed and a bare column exist, the suffixed one wins.
	d := Detect([]string{"weight", "weight_kg"})
	if d.Weight == nil || d.Weight.RawColumn != "weight_kg" {
		t.Errorf("weight column = %+v, want weight_kg", d.Weight)
	}
}

func TestWeightRoundTrip(t *testing.T) {
	for _, kg := range []float64{0, 2.5, 60, 102.5, 250} {
		back := ToKg(KgToLb(kg), UnitLb)
		if kg == 0 {
			if back != 0 {
				t.Errorf("round trip of 0 = %v", back)
			}
			continue
		}
		if rel := math.Abs(back-kg) / kg; rel > 1e-6 {
			t.Errorf("round trip %v kg -> %v kg, relative error %v", kg, back, rel)
		}
	}
}

func TestConversions(t *testing.T) {
	if got := ToKg(220.46226218487757, UnitLb); math.Abs(got-100) > 1e-9 {
		t.Errorf("220.46 lb = %v kg, want 100", got)
	}
	if got := ToKg(100, UnitKg); got != 100 {
		t.Errorf("kg passthrough = %v", got)
	}
	if got := ToKm(1, UnitMi); math.Abs(got-1.609344) > 1e-6 {
		t.Errorf("1 mi = %v km, want 1.609344", got)
	}
	if got := ToCm(1, UnitIn); math.Abs(got-2.54) > 1e-6 {
		t.Errorf("1 in = %v cm, want 2.54", got)
	}
}
