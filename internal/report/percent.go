package report

import "fmt"

// FormatPercent renders observed/expected as a display percentage. A perfect
// score collapses to "100%" rather than "100.00%"; everything else keeps two
// decimals. Zero expected days means nothing was required, which reads as
// fully met.
func FormatPercent(observed, expected int) string {
	if expected == 0 || observed == expected {
		return "100%"
	}
	ratio := float64(observed) / float64(expected) * 100
	return fmt.Sprintf("%.2f%%", ratio)
}
