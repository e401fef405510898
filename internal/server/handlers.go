package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/liftstats/internal/engine"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "view must be week or month"})
		return
	}

	sets, st, err := s.loadCanonical(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, engine.BuildPeriodSummary(sets, view, st, time.Now()))
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "view must be week or month"})
		return
	}
	metric, ok := parseMetric(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metric must be workouts, duration, volume or sets"})
		return
	}

	sets, st, err := s.loadCanonical(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var rows []engine.DistributionRow
	if r.URL.Query().Get("fine") == "true" {
		rows = engine.BuildFineMuscleDistribution(sets, view, metric, st, time.Now())
	} else {
		rows = engine.BuildMuscleDistribution(sets, view, metric, st, time.Now())
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleExerciseStats(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "view must be week or month"})
		return
	}

	sets, st, err := s.loadCanonical(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, engine.BuildExerciseStats(sets, view, st, time.Now()))
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sets, _, err := s.loadCanonical(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	records := engine.BuildPersonalRecords(sets)
	if exercise := r.URL.Query().Get("exercise"); exercise != "" {
		for _, pr := range records {
			if pr.ExerciseTitle == exercise {
				writeJSON(w, http.StatusOK, []engine.PersonalRecords{pr})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no records for exercise " + exercise})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleUnconfigured(w http.ResponseWriter, r *http.Request) {
	sets, err := s.loadRawMerged(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	names := make([]string, 0, len(sets))
	for _, s := range sets {
		names = append(names, s.ExerciseTitle)
	}
	unconfigured := s.catalog.FindUnconfigured(names)
	if unconfigured == nil {
		unconfigured = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"unconfigured": unconfigured})
}

type customExerciseRequest struct {
	ExerciseTitle    string `json:"exercise_title"`
	Equipment        string `json:"equipment"`
	PrimaryMuscle    string `json:"primary_muscle"`
	SecondaryMuscles string `json:"secondary_muscles"` // semicolon-separated
}

func (s *Server) handleUpsertCustom(w http.ResponseWriter, r *http.Request) {
	var req customExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.ExerciseTitle == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_title is required"})
		return
	}

	if err := s.catalog.UpsertCustom(r.Context(), req.ExerciseTitle, req.Equipment, req.PrimaryMuscle, req.SecondaryMuscles); err != nil {
		s.log.Error("upserting custom exercise", "exercise", req.ExerciseTitle, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Resolve(req.ExerciseTitle))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseView(r *http.Request) (engine.ViewMode, bool) {
	switch r.URL.Query().Get("view") {
	case "", "week":
		return engine.ViewWeek, true
	case "month":
		return engine.ViewMonth, true
	default:
		return "", false
	}
}

func parseMetric(r *http.Request) (engine.Metric, bool) {
	switch r.URL.Query().Get("metric") {
	case "", "sets":
		return engine.MetricSets, true
	case "workouts":
		return engine.MetricWorkouts, true
	case "duration":
		return engine.MetricDuration, true
	case "volume":
		return engine.MetricVolume, true
	default:
		return "", false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
