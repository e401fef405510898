package models

import (
	"encoding/json"
	"time"
)

// HevyTime handles the timestamps used by the Hevy REST API. The API emits
// RFC 3339; older payload dumps carry a second-less variant.
type HevyTime struct {
	time.Time
}

var hevyTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *HevyTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	// Unparseable timestamps degrade to the zero time rather than failing
	// the whole payload.
	for _, layout := range hevyTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t HevyTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// HevyWorkoutsPage is one page of the paged workouts endpoint.
type HevyWorkoutsPage struct {
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
	Workouts  []HevyWorkout `json:"workouts"`
}

// HevyWorkout is one workout from the REST API or a payload dump.
type HevyWorkout struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	StartTime    HevyTime       `json:"start_time"`
	EndTime      HevyTime       `json:"end_time"`
	BodyWeightKg float64        `json:"body_weight,omitempty"`
	Exercises    []HevyExercise `json:"exercises"`
}

// HevyExercise is one exercise block inside a workout. Sets are kept as raw
// maps because the set schema varies between API versions: weight_kg|weight,
// id|set_id|uuid, set_type|type|setType|warmup, assorted duration and
// distance fields.
type HevyExercise struct {
	Title        string           `json:"title"`
	BodyWeightKg float64          `json:"body_weight,omitempty"`
	Sets         []map[string]any `json:"sets"`
}

// HevyPayload is the top-level shape accepted by the remote ingestion
// adapter: either a bare workout list or a page object.
type HevyPayload struct {
	Workouts []HevyWorkout `json:"workouts"`
}
