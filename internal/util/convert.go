package util

import (
	"math"
	"time"
)

// Capacity figures coming back from the API are raw byte counts. The
// web console reports capacities using decimal units, so conversions here
// divide by powers of 1000, not 1024.

func BytesToGB(bytes int64) float64 {
	return round2(float64(bytes) / 1e9)
}

func BytesToTB(bytes int64) float64 {
	return round2(float64(bytes) / 1e12)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns part/whole as a percentage rounded to 2 decimals.
// A zero whole yields 0.
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

// EpochMillisToUTC converts an epoch-millisecond timestamp to UTC.
// Zero and negative values mean "no timestamp" and map to nil.
func EpochMillisToUTC(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

// HoursSince returns the elapsed hours between t and now, rounded to
// 2 decimals. Nil timestamps yield 0.
func HoursSince(t *time.Time, now time.Time) float64 {
	if t == nil {
		return 0
	}
	return round2(now.Sub(*t).Hours())
}

// DaysSince returns the elapsed days between t and now, rounded to
// 2 decimals. Nil timestamps yield 0.
func DaysSince(t *time.Time, now time.Time) float64 {
	if t == nil {
		return 0
	}
	return round2(now.Sub(*t).Hours() / 24)
}
