package engine

import (
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
)

func TestWeekStartOf(t *testing.T) {
	// Wednesday 2026-08-12.
	wed := time.Date(2026, 8, 12, 14, 30, 0, 0, time.UTC)

	got := WeekStartOf(wed, time.Monday)
	if want := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Monday week start = %v, want %v", got, want)
	}

	got = WeekStartOf(wed, time.Sunday)
	if want := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Sunday week start = %v, want %v", got, want)
	}

	// A Monday is its own week start under the Monday policy.
	mon := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	if got := WeekStartOf(mon, time.Monday); !got.Equal(mon) {
		t.Errorf("Monday maps to %v, want itself", got)
	}
}

func TestTrailingWindowShape(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 3, 17, 0, 0, 0, time.UTC)
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, start),
	}, testCatalog, st)

	cases := []struct {
		view ViewMode
		want int
	}{
		{ViewWeek, WeekWindowPeriods},
		{ViewMonth, MonthWindowPeriods},
	}
	for _, tc := range cases {
		window := TrailingWindow(sets, tc.view, st, now)
		if len(window) != tc.want {
			t.Errorf("%v window length = %d, want %d", tc.view, len(window), tc.want)
		}
		for i := 1; i < len(window); i++ {
			if !window[i].After(window[i-1]) {
				t.Errorf("%v window not ascending at %d: %v then %v", tc.view, i, window[i-1], window[i])
			}
			var next time.Time
			if tc.view == ViewWeek {
				next = window[i-1].AddDate(0, 0, 7)
			} else {
				next = window[i-1].AddDate(0, 1, 0)
			}
			if !window[i].Equal(next) {
				t.Errorf("%v window gap at %d: %v then %v", tc.view, i, window[i-1], window[i])
			}
		}
	}
}

func TestTrailingWindowAnchoredAtLatestData(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	// Latest workout is in June; the window must end there, not at now.
	latest := time.Date(2026, 6, 9, 18, 0, 0, 0, time.UTC)
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)),
		rawSet("Squat (Barbell)", "normal", 140, 5, latest),
	}, testCatalog, st)

	window := TrailingWindow(sets, ViewWeek, st, now)
	last := window[len(window)-1]
	if want := WeekStartOf(latest, time.Monday); !last.Equal(want) {
		t.Errorf("window anchor = %v, want %v", last, want)
	}

	window = TrailingWindow(sets, ViewMonth, st, now)
	last = window[len(window)-1]
	if want := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC); !last.Equal(want) {
		t.Errorf("month window anchor = %v, want %v", last, want)
	}
}

func TestTrailingWindowEmptyData(t *testing.T) {
	st := DefaultSettings()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) // a Monday

	window := TrailingWindow(nil, ViewWeek, st, now)
	if len(window) != WeekWindowPeriods {
		t.Fatalf("empty-data window length = %d, want %d", len(window), WeekWindowPeriods)
	}
	if last := window[len(window)-1]; !last.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("empty-data anchor = %v, want the current week", last)
	}

	window = TrailingWindow(nil, ViewMonth, st, now)
	if last := window[len(window)-1]; !last.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("empty-data month anchor = %v, want the current month", last)
	}
}

func TestWeekStartPolicyShiftsPeriods(t *testing.T) {
	// A Sunday workout lands in different weeks depending on the policy.
	sunday := time.Date(2026, 8, 9, 10, 0, 0, 0, time.UTC)

	st := DefaultSettings()
	sets := BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, sunday),
	}, testCatalog, st)
	if want := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC); !sets[0].WeekPeriod.Equal(want) {
		t.Errorf("Monday-start week period = %v, want %v", sets[0].WeekPeriod, want)
	}

	st.WeekStart = WeekStartSunday
	sets = BuildCanonical([]models.RawSet{
		rawSet("Bench Press (Barbell)", "normal", 100, 5, sunday),
	}, testCatalog, st)
	if want := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC); !sets[0].WeekPeriod.Equal(want) {
		t.Errorf("Sunday-start week period = %v, want %v", sets[0].WeekPeriod, want)
	}
}
