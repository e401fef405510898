package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftstats/internal/engine"
)

func parseViewArg(s string) (engine.ViewMode, bool) {
	switch s {
	case "", "week":
		return engine.ViewWeek, true
	case "month":
		return engine.ViewMonth, true
	default:
		return "", false
	}
}

func parseMetricArg(s string) (engine.Metric, bool) {
	switch s {
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

// --- Tool definitions ---

var toolGetPeriodSummary = mcp.NewTool("get_period_summary",
	mcp.WithDescription("Training volume over the trailing window: one row per period with unique workouts, duration hours, metric volume (kg) and effective set count. 16 weekly or 12 monthly periods, zero-filled."),
	mcp.WithString("view", mcp.Description("Bucketing: 'week' (default) or 'month'."), mcp.Enum("week", "month")),
)

var toolGetMuscleDistribution = mcp.NewTool("get_muscle_distribution",
	mcp.WithDescription("How training distributes over muscle groups per period, for one metric. Secondary muscles count at the configured factor; a workout's duration is split over the groups it trained."),
	mcp.WithString("view", mcp.Description("Bucketing: 'week' (default) or 'month'."), mcp.Enum("week", "month")),
	mcp.WithString("metric", mcp.Description("Quantity to distribute: 'sets' (default), 'workouts', 'duration' or 'volume'."), mcp.Enum("sets", "workouts", "duration", "volume")),
	mcp.WithBoolean("fine", mcp.Description("Break groups down into fine muscles (e.g. Lats, Traps within Back).")),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Per-period, per-exercise rollups over the trailing window: effective sets, total reps, heaviest weight, best set volume, session volume, best estimated 1RM."),
	mcp.WithString("view", mcp.Description("Bucketing: 'week' (default) or 'month'."), mcp.Enum("week", "month")),
	mcp.WithString("exercise", mcp.Description("Filter to one exercise title (exact match).")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("All-time personal records per exercise: heaviest weight, best estimated 1RM, best set and session volume, and the 1-15 rep-max table, each with dates."),
	mcp.WithString("exercise", mcp.Description("Filter to one exercise title (exact match).")),
)

var toolListUnconfigured = mcp.NewTool("list_unconfigured_exercises",
	mcp.WithDescription("Exercise names present in the data that neither the built-in catalog nor a custom entry can attribute to muscles. These exercises are missing from muscle distributions until configured."),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("What is imported: dataset count, stored sets, distinct workouts, covered date range and last import time."),
)

// --- Tool handlers ---

func (h *handlers) getPeriodSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, ok := parseViewArg(req.GetString("view", ""))
	if !ok {
		return mcp.NewToolResultError("view must be week or month"), nil
	}

	sets, st, err := h.ds.Canonical(ctx)
	if err != nil {
		h.log.Error("mcp get_period_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(engine.BuildPeriodSummary(sets, view, st, time.Now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleDistribution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, ok := parseViewArg(req.GetString("view", ""))
	if !ok {
		return mcp.NewToolResultError("view must be week or month"), nil
	}
	metric, ok := parseMetricArg(req.GetString("metric", ""))
	if !ok {
		return mcp.NewToolResultError("metric must be sets, workouts, duration or volume"), nil
	}

	sets, st, err := h.ds.Canonical(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_distribution", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var rows []engine.DistributionRow
	if req.GetBool("fine", false) {
		rows = engine.BuildFineMuscleDistribution(sets, view, metric, st, time.Now())
	} else {
		rows = engine.BuildMuscleDistribution(sets, view, metric, st, time.Now())
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, ok := parseViewArg(req.GetString("view", ""))
	if !ok {
		return mcp.NewToolResultError("view must be week or month"), nil
	}

	sets, st, err := h.ds.Canonical(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	stats := engine.BuildExerciseStats(sets, view, st, time.Now())
	if exercise := req.GetString("exercise", ""); exercise != "" {
		filtered := stats[:0]
		for _, row := range stats {
			if row.ExerciseTitle == exercise {
				filtered = append(filtered, row)
			}
		}
		stats = filtered
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sets, _, err := h.ds.Canonical(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	records := engine.BuildPersonalRecords(sets)
	if exercise := req.GetString("exercise", ""); exercise != "" {
		filtered := records[:0]
		for _, pr := range records {
			if pr.ExerciseTitle == exercise {
				filtered = append(filtered, pr)
			}
		}
		records = filtered
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listUnconfigured(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := h.ds.Unconfigured(ctx)
	if err != nil {
		h.log.Error("mcp list_unconfigured_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if names == nil {
		names = []string{}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"unconfigured": names})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.Stats(ctx)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
