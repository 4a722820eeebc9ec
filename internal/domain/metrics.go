package domain

import (
	"fmt"
	"math"
	"time"
)

// MetricsResult holds verification statistics for one aligned pair.
type MetricsResult struct {
	// RMSD is the root-mean-square of model minus observed over points where
	// both are projectable.
	RMSD float64
	// PeakError is the observed maximum minus the model maximum, each taken
	// over its own projectable points.
	PeakError float64
	// PeakLagMinutes is observed peak time minus model peak time; positive
	// means the observed peak came later.
	PeakLagMinutes float64
	// SampleCount is the number of points used for RMSD.
	SampleCount int

	ObservedPeakTime time.Time
	ModelPeakTime    time.Time
}

// ComputeMetrics derives RMSD, peak error and peak lag from an aligned pair.
// It fails with ErrNoValidSamples when no point has both values.
func ComputeMetrics(pair AlignedPair, tl Timeline) (MetricsResult, error) {
	n := tl.Len()
	if len(pair.Observed) != n || len(pair.Model) != n {
		return MetricsResult{}, fmt.Errorf("compute metrics: %d observed, %d model, %d times: %w",
			len(pair.Observed), len(pair.Model), n, ErrLengthMismatch)
	}

	diffs := make([]float64, 0, n)
	for i := range tl.Times {
		o, m := pair.Observed[i], pair.Model[i]
		if usableProjection(o) && usableProjection(m) {
			diffs = append(diffs, m.Value-o.Value)
		}
	}
	res := MetricsResult{SampleCount: len(diffs)}
	if len(diffs) == 0 {
		return res, fmt.Errorf("compute metrics: %w", ErrNoValidSamples)
	}

	rmsd, err := RMS(diffs)
	if err != nil {
		return res, fmt.Errorf("compute metrics: %w", err)
	}
	if math.IsInf(rmsd, 0) {
		return res, fmt.Errorf("compute metrics: rmsd: %w", ErrNonFiniteResult)
	}
	res.RMSD = rmsd

	obsMax, obsAt, err := peak(pair.Observed, tl)
	if err != nil {
		return res, fmt.Errorf("compute metrics: observed peak: %w", err)
	}
	modMax, modAt, err := peak(pair.Model, tl)
	if err != nil {
		return res, fmt.Errorf("compute metrics: model peak: %w", err)
	}

	res.PeakError = obsMax - modMax
	if math.IsInf(res.PeakError, 0) {
		return res, fmt.Errorf("compute metrics: peak error: %w", ErrNonFiniteResult)
	}
	res.ObservedPeakTime = obsAt
	res.ModelPeakTime = modAt
	res.PeakLagMinutes = obsAt.Sub(modAt).Minutes()
	return res, nil
}

// usableProjection reports whether p carries a finite value. Non-finite
// projections count as unprojectable.
func usableProjection(p Projection) bool {
	return p.OK && !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
}

// peak finds the maximum usable value and the time of its first occurrence.
func peak(values []Projection, tl Timeline) (float64, time.Time, error) {
	best := -1
	for i, p := range values {
		if !usableProjection(p) {
			continue
		}
		if best < 0 || p.Value > values[best].Value {
			best = i
		}
	}
	if best < 0 {
		return 0, time.Time{}, ErrNoValidSamples
	}
	return values[best].Value, tl.Times[best], nil
}

// RMS returns the root mean square of values, skipping NaN entries.
func RMS(values []float64) (float64, error) {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v * v
		n++
	}
	if n == 0 {
		return 0, ErrNoValidSamples
	}
	return math.Sqrt(sum / float64(n)), nil
}
