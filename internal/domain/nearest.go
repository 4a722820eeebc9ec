package domain

import (
	"math"
	"time"
)

// Number is the set of element types Nearest accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Nearest returns the item closest in value to pivot and its index in items.
// Items need not be sorted. Ties go to the leftmost item; NaN items are never
// chosen unless every item is NaN.
func Nearest[T Number](items []T, pivot T) (T, int, error) {
	var zero T
	if len(items) == 0 {
		return zero, -1, ErrEmptyInput
	}
	best, bestDist := 0, math.Inf(1)
	for i, v := range items {
		d := math.Abs(float64(v) - float64(pivot))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return items[best], best, nil
}

// NearestTime is Nearest for timestamps.
func NearestTime(times []time.Time, pivot time.Time) (time.Time, int, error) {
	if len(times) == 0 {
		return time.Time{}, -1, ErrEmptyInput
	}
	best, bestDist := 0, absDuration(times[0].Sub(pivot))
	for i := 1; i < len(times); i++ {
		if d := absDuration(times[i].Sub(pivot)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return times[best], best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
