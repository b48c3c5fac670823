package util

import (
	"math"
	"time"
)

// MinutesUntil returns the number of whole minutes between now and target,
// rounded half away from zero. Negative values mean target is in the past.
func MinutesUntil(target time.Time, now time.Time) int {
	diff := target.Sub(now)

	return int(math.Round(diff.Minutes()))
}

// FormatClock renders an instant as a zero-padded 24-hour clock time.
// The output is stable for a given instant and location, so it is safe to
// use as part of an identity key.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
