// Package hevyapi converts nested remote-API workout payloads
// (workouts → exercises → sets) into flat RawSet rows.
package hevyapi

import (
	"strconv"
	"strings"

	"github.com/claude/liftstats/internal/ingest"
	"github.com/claude/liftstats/internal/models"
	"github.com/claude/liftstats/internal/units"
)

// Flatten produces one RawSet row per set in the payload. A workout repeated
// under the same id is dropped entirely after its first occurrence; within a
// workout, sets are deduplicated by their own id when present, else by
// (exercise, set index). Malformed numeric fields degrade to 0.
func Flatten(payload *models.HevyPayload) ([]models.RawSet, ingest.Result) {
	col := ingest.NewCollector()

	for _, w := range payload.Workouts {
		id := w.ID
		if id == "" {
			id = models.WorkoutID(w.Title, w.StartTime.Time)
		}
		if !col.BeginWorkout(id) {
			continue
		}

		for _, ex := range w.Exercises {
			bodyWeight := ex.BodyWeightKg
			if bodyWeight == 0 {
				bodyWeight = w.BodyWeightKg
			}

			for i, raw := range ex.Sets {
				setType := probeString(raw, "set_type", "type", "setType")
				if setType == "" {
					if probeBool(raw, "warmup") {
						setType = "warmup"
					} else {
						setType = "normal"
					}
				}

				index := i
				if v, ok := probeFloatOK(raw, "index", "set_index"); ok {
					index = int(v)
				}

				s := models.RawSet{
					WorkoutID:     id,
					WorkoutTitle:  w.Title,
					StartTime:     w.StartTime.Time,
					EndTime:       w.EndTime.Time,
					ExerciseTitle: ex.Title,
					SetIndex:      index,
					SetID:         probeString(raw, "id", "set_id", "uuid"),
					SetType:       setType,
					Kind:          models.ClassifySetType(setType),
					WeightKg:      probeFloat(raw, "weight_kg", "weight"),
					Reps:          int(probeFloat(raw, "reps")),
					BodyWeightKg:  bodyWeight,
					DurationSec:   setDuration(raw),
					DistanceKm:    setDistance(raw),
				}
				col.Add(s)
			}
		}
	}

	return col.Finish()
}

// setDuration reads a set's duration in seconds from the numeric fields,
// falling back to H:M:S / M:S duration strings.
func setDuration(raw map[string]any) float64 {
	if v, ok := probeFloatOK(raw, "duration_seconds", "duration_sec"); ok {
		return v
	}
	if s := probeString(raw, "duration"); s != "" {
		if sec, ok := ParseClockDuration(s); ok {
			return sec
		}
		// a bare number of seconds
		return coerceFloat(s)
	}
	return 0
}

// setDistance reads a set's distance in kilometers. Explicit mile fields are
// converted; an untagged value is kilometers unless it is implausibly large
// for kilometers, in which case it is read as meters.
func setDistance(raw map[string]any) float64 {
	if v, ok := probeFloatOK(raw, "distance_km"); ok {
		return v
	}
	if v, ok := probeFloatOK(raw, "distance_miles", "distance_mi"); ok {
		return units.ToKm(v, units.UnitMi)
	}
	if v, ok := probeFloatOK(raw, "distance_meters", "distance_m"); ok {
		return v / 1000
	}
	if v, ok := probeFloatOK(raw, "distance"); ok {
		unit := strings.ToLower(probeString(raw, "distance_unit", "unit"))
		switch {
		case unit == "mi" || unit == "miles":
			return units.ToKm(v, units.UnitMi)
		case v > 1000: // nobody logs a 1000 km set
			return v / 1000
		default:
			return v
		}
	}
	return 0
}

// ParseClockDuration parses "H:M:S" or "M:S" into seconds.
func ParseClockDuration(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var total float64
	for _, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// probeString returns the first non-empty string value among the keys.
func probeString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// probeBool reads a boolean flag, accepting true/"true"/1.
func probeBool(raw map[string]any, key string) bool {
	v, ok := raw[key]
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true")
	case float64:
		return b != 0
	}
	return false
}

// probeFloat returns the first present key coerced to float64, or 0.
func probeFloat(raw map[string]any, keys ...string) float64 {
	v, _ := probeFloatOK(raw, keys...)
	return v
}

func probeFloatOK(raw map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			return coerceFloat(n), true
		}
	}
	return 0, false
}

// coerceFloat parses a numeric string, degrading to 0 on malformed input.
func coerceFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
