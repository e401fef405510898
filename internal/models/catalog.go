package models

// Exercise formats. The format decides how a set's adjusted weight is
// computed: assisted bodyweight subtracts the recorded (assistance) weight
// from body weight, weighted bodyweight adds it.
const (
	FormatWeightReps         = "weight_reps"
	FormatBodyweightReps     = "bodyweight_reps"
	FormatAssistedBodyweight = "assisted_bodyweight"
	FormatWeightedBodyweight = "weighted_bodyweight"
	FormatDuration           = "duration"
	FormatDistanceDuration   = "distance_duration"
)

// CatalogEntry describes one exercise in the built-in catalog.
type CatalogEntry struct {
	ExerciseTitle string   `json:"exercise_title"`
	PrimaryMuscle string   `json:"primary_muscle"`
	OtherMuscles  []string `json:"other_muscles,omitempty"`
	Equipment     string   `json:"equipment,omitempty"`
	ExerciseType  string   `json:"exercise_type,omitempty"`
	Format        string   `json:"format,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	MediaURL      string   `json:"media_url,omitempty"`
}

// CustomExercise is a user-authored catalog entry for an exercise the
// built-in catalog does not recognize. An entry with an empty primary muscle
// is "unconfigured" and does not shadow the built-in catalog.
type CustomExercise struct {
	ExerciseTitle    string   `json:"exercise_title"`
	Equipment        string   `json:"equipment,omitempty"`
	PrimaryMuscle    string   `json:"primary_muscle"`
	SecondaryMuscles []string `json:"secondary_muscles,omitempty"`
}

// Configured reports whether the custom entry carries a usable attribution.
func (c CustomExercise) Configured() bool {
	return c.PrimaryMuscle != ""
}
