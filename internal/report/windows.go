package report

import "time"

// Window is one half-open backup-day range [Start, End). A snapshot counts
// toward the day iff Start <= taken < End.
type Window struct {
	Start time.Time
	End   time.Time
}

// Day is the calendar date the window reports against, its end day.
func (w Window) Day() time.Time {
	return time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)
}

func (w Window) Contains(t *time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows generates daysToReport non-overlapping 24-hour ranges, each ending
// at endHour UTC on consecutive days. The newest window ends at the most
// recent endHour boundary not after now, shifted back by skipDays days.
// Windows come back oldest first.
func Windows(daysToReport, endHour, skipDays int, now time.Time) []Window {
	if daysToReport <= 0 {
		return nil
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), endHour, 0, 0, 0, time.UTC)
	if end.After(now) {
		end = end.AddDate(0, 0, -1)
	}
	end = end.AddDate(0, 0, -skipDays)

	windows := make([]Window, daysToReport)
	for i := daysToReport - 1; i >= 0; i-- {
		windows[i] = Window{Start: end.AddDate(0, 0, -1), End: end}
		end = end.AddDate(0, 0, -1)
	}
	return windows
}

// MonthWindows generates one window per day of the given calendar month,
// each ending at endHour UTC.
func MonthWindows(year int, month time.Month, endHour int) []Window {
	first := time.Date(year, month, 1, endHour, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, 0).Sub(first).Hours() / 24

	windows := make([]Window, 0, int(days))
	for d := 0; d < int(days); d++ {
		end := first.AddDate(0, 0, d)
		windows = append(windows, Window{Start: end.AddDate(0, 0, -1), End: end})
	}
	return windows
}
