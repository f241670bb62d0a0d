package output

import "time"

var units = []time.Duration{
	time.Nanosecond,
	time.Microsecond,
	time.Millisecond,
	time.Second,
	time.Minute,
	time.Hour,
}

// Elapsed returns the time since start rounded for display, e.g. 725.8ms or 5m12s.
func Elapsed(start time.Time) time.Duration {
	return truncate(time.Since(start))
}

// truncate keeps the largest non-zero unit of d, the unit below it, and a tenth of
// that unit when the two are a thousand apart.
func truncate(d time.Duration) time.Duration {
	largest := -1
	for i, unit := range units {
		if d >= unit {
			largest = i
		}
	}
	if largest < 1 {
		return d
	}

	resolution := units[largest-1]
	if units[largest]/resolution > 100 {
		resolution *= 10
	}

	return d.Truncate(resolution)
}
