package engine

import "time"

// WeekStartOf returns the date (midnight UTC) the week containing t begins
// on, for the given week-start weekday.
func WeekStartOf(t time.Time, weekStart time.Weekday) time.Time {
	d := dateOf(t)
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthStartOf returns the first day of t's month.
func MonthStartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TrailingWindow produces the fixed-length run of period keys the views
// render: 16 weeks or 12 months, contiguous and ascending, right-anchored at
// the most recent observed period — or, with no data, at the period
// containing now. Empty periods stay in the window.
func TrailingWindow(sets []CanonicalSet, view ViewMode, st Settings, now time.Time) []time.Time {
	st = st.Normalize()

	var anchor time.Time
	for _, s := range sets {
		if k := s.PeriodKey(view); k.After(anchor) {
			anchor = k
		}
	}

	if view == ViewMonth {
		if anchor.IsZero() {
			anchor = MonthStartOf(now)
		}
		window := make([]time.Time, 0, MonthWindowPeriods)
		for i := MonthWindowPeriods - 1; i >= 0; i-- {
			window = append(window, anchor.AddDate(0, -i, 0))
		}
		return window
	}

	if anchor.IsZero() {
		anchor = WeekStartOf(now, st.weekStartWeekday())
	}
	window := make([]time.Time, 0, WeekWindowPeriods)
	for i := WeekWindowPeriods - 1; i >= 0; i-- {
		window = append(window, anchor.AddDate(0, 0, -7*i))
	}
	return window
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
