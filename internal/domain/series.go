package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Sample is one timestamped value. A missing value is NaN, which keeps it
// distinct from a real zero reading. Masked marks samples flagged invalid by
// masked model output.
type Sample struct {
	Time   time.Time
	Value  float64
	Masked bool
}

// MissingSample returns a sample at t with no value.
func MissingSample(t time.Time) Sample {
	return Sample{Time: t, Value: math.NaN()}
}

// Missing reports whether the sample has no value.
func (s Sample) Missing() bool {
	return math.IsNaN(s.Value)
}

// usable reports whether a sample may appear in a cleaned series.
func (s Sample) usable() bool {
	return !s.Masked && !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0)
}

// Series is a sequence of samples in any order. After Clean, times are strictly
// increasing and every value is present and finite.
type Series []Sample

// Start returns the first sample time. The series must be non-empty.
func (s Series) Start() time.Time { return s[0].Time }

// End returns the last sample time. The series must be non-empty.
func (s Series) End() time.Time { return s[len(s)-1].Time }

// Clean returns a new series sorted by time with masked, missing and
// non-finite samples removed. Samples sharing a timestamp keep only the first
// one in input order. The input is not modified.
func Clean(s Series) Series {
	sorted := make(Series, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	out := make(Series, 0, len(sorted))
	for _, sm := range sorted {
		if !sm.usable() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Time.Equal(sm.Time) {
			continue
		}
		out = append(out, sm)
	}
	return out
}

// checkCleaned verifies the invariant Clean establishes.
func checkCleaned(s Series) error {
	for i, sm := range s {
		if !sm.usable() {
			return fmt.Errorf("sample %d has no usable value: %w", i, ErrUnsortedSeries)
		}
		if i > 0 && !sm.Time.After(s[i-1].Time) {
			return fmt.Errorf("sample %d at %s does not follow %s: %w",
				i, sm.Time.Format(time.RFC3339), s[i-1].Time.Format(time.RFC3339), ErrUnsortedSeries)
		}
	}
	return nil
}
