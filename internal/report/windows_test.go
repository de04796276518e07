package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)

	windows := Windows(7, 10, 0, now)
	require.Len(t, windows, 7)

	// Newest window ends at the most recent 10:00 boundary.
	newest := windows[6]
	assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), newest.End)
	assert.Equal(t, time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), newest.Start)

	for i, w := range windows {
		assert.Equal(t, 24*time.Hour, w.End.Sub(w.Start), "window %d width", i)
		if i > 0 {
			// Consecutive and non-overlapping.
			assert.Equal(t, windows[i-1].End, w.Start)
		}
	}
}

func TestWindowsBeforeEndHour(t *testing.T) {
	// At 08:00 the day's 10:00 boundary has not passed yet, so the newest
	// window ends yesterday at 10:00.
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	windows := Windows(3, 10, 0, now)
	require.Len(t, windows, 3)
	assert.Equal(t, time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), windows[2].End)
}

func TestWindowsSkipDays(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	windows := Windows(7, 10, 2, now)
	assert.Equal(t, time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC), windows[6].End)
}

func TestWindowsZeroDays(t *testing.T) {
	assert.Nil(t, Windows(0, 10, 0, time.Now()))
}

func TestWindowContainsHalfOpen(t *testing.T) {
	w := Window{
		Start: time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
	}

	inside := w.Start.Add(time.Hour)
	assert.True(t, w.Contains(&inside))

	atStart := w.Start
	assert.True(t, w.Contains(&atStart))

	atEnd := w.End
	assert.False(t, w.Contains(&atEnd))

	before := w.Start.Add(-time.Second)
	assert.False(t, w.Contains(&before))

	assert.False(t, w.Contains(nil))
}

func TestMonthWindows(t *testing.T) {
	windows := MonthWindows(2024, time.February, 10)
	require.Len(t, windows, 29) // leap year

	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), windows[0].End)
	assert.Equal(t, time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC), windows[28].End)
}
