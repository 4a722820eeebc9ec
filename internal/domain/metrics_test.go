package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetrics_IdenticalSeries(t *testing.T) {
	s := Clean(Series{
		{Time: at(0), Value: 0.1}, {Time: at(7), Value: 0.5}, {Time: at(19), Value: 1.3},
		{Time: at(31), Value: 0.9}, {Time: at(44), Value: -0.2},
	})

	tl, pair, err := Project(s, s, 6)
	require.NoError(t, err)

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.RMSD)
	assert.Equal(t, 0.0, m.PeakError)
	assert.Equal(t, 0.0, m.PeakLagMinutes)
	assert.Equal(t, tl.Len(), m.SampleCount)
}

func TestComputeMetrics_ShiftedModel(t *testing.T) {
	obs := Series{{Time: at(0), Value: 1.0}, {Time: at(10), Value: 2.0}}
	mod := Series{{Time: at(10), Value: 1.0}, {Time: at(20), Value: 2.0}}

	tl, pair, err := Project(Clean(obs), Clean(mod), 10, WithExtent(ExtentUnion))
	require.NoError(t, err)

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)

	// Model peak at +20m, observed peak at +10m.
	assert.Equal(t, -10.0, m.PeakLagMinutes)
	assert.Equal(t, at(10), m.ObservedPeakTime)
	assert.Equal(t, at(20), m.ModelPeakTime)
	assert.Equal(t, 0.0, m.PeakError)
	// Only +10m is shared, where the series differ by 1.0.
	assert.Equal(t, 1, m.SampleCount)
	assert.InDelta(t, 1.0, m.RMSD, 1e-12)
}

func TestComputeMetrics_ShiftedModelIntersection(t *testing.T) {
	obs := Series{{Time: at(0), Value: 1.0}, {Time: at(10), Value: 2.0}}
	mod := Series{{Time: at(10), Value: 1.0}, {Time: at(20), Value: 2.0}}

	tl, pair, err := Project(Clean(obs), Clean(mod), 10)
	require.NoError(t, err)
	require.Equal(t, 1, tl.Len())

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.PeakLagMinutes)
	assert.InDelta(t, 1.0, m.PeakError, 1e-12)
	assert.InDelta(t, 1.0, m.RMSD, 1e-12)
}

func TestComputeMetrics_KnownValues(t *testing.T) {
	tl := Timeline{Start: at(0), Step: 6 * time.Minute, Times: []time.Time{at(0), at(6), at(12), at(18)}}
	pair := AlignedPair{
		Observed: []Projection{{0.5, true}, {1.5, true}, {1.0, true}, {0.2, true}},
		Model:    []Projection{{0.7, true}, {1.1, true}, {1.4, true}, {0.2, true}},
	}

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)

	// diffs: 0.2, -0.4, 0.4, 0 -> mean square 0.09
	assert.InDelta(t, 0.3, m.RMSD, 1e-12)
	assert.InDelta(t, 0.1, m.PeakError, 1e-12)
	assert.Equal(t, -6.0, m.PeakLagMinutes)
	assert.Equal(t, 4, m.SampleCount)
}

func TestComputeMetrics_PeakIgnoresUnprojectable(t *testing.T) {
	tl := Timeline{Step: 6 * time.Minute, Times: []time.Time{at(0), at(6), at(12)}}
	pair := AlignedPair{
		// The unprojectable slot holds a large stale value that must be ignored.
		Observed: []Projection{{Value: 99}, {1.0, true}, {2.0, true}},
		Model:    []Projection{{3.0, true}, {1.0, true}, {Value: 50}},
	}

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)
	assert.Equal(t, 1, m.SampleCount)
	assert.Equal(t, at(12), m.ObservedPeakTime)
	assert.Equal(t, at(0), m.ModelPeakTime)
	assert.InDelta(t, -1.0, m.PeakError, 1e-12)
	assert.Equal(t, 12.0, m.PeakLagMinutes)
}

func TestComputeMetrics_PeakTieUsesEarliest(t *testing.T) {
	tl := Timeline{Step: 6 * time.Minute, Times: []time.Time{at(0), at(6), at(12)}}
	pair := AlignedPair{
		Observed: []Projection{{1, true}, {2, true}, {2, true}},
		Model:    []Projection{{2, true}, {1, true}, {2, true}},
	}

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)
	assert.Equal(t, at(6), m.ObservedPeakTime)
	assert.Equal(t, at(0), m.ModelPeakTime)
	assert.Equal(t, 6.0, m.PeakLagMinutes)
}

func TestComputeMetrics_NoProjectablePoints(t *testing.T) {
	tl := Timeline{Step: 6 * time.Minute, Times: []time.Time{at(0), at(6)}}
	pair := AlignedPair{
		Observed: []Projection{{1, true}, {}},
		Model:    []Projection{{}, {1, true}},
	}

	m, err := ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrNoValidSamples)
	assert.Zero(t, m.SampleCount)
	assert.False(t, math.IsNaN(m.RMSD))
}

func TestComputeMetrics_EmptyTimeline(t *testing.T) {
	_, err := ComputeMetrics(AlignedPair{}, Timeline{})
	require.ErrorIs(t, err, ErrNoValidSamples)
}

func TestComputeMetrics_LengthMismatch(t *testing.T) {
	tl := Timeline{Times: []time.Time{at(0), at(6)}}
	pair := AlignedPair{Observed: []Projection{{1, true}}, Model: []Projection{{1, true}, {2, true}}}

	_, err := ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestComputeMetrics_AllMissingSeries(t *testing.T) {
	obs := Clean(Series{MissingSample(at(0)), MissingSample(at(6))})
	mod := Clean(Series{{Time: at(0), Value: 1}, {Time: at(6), Value: 2}})

	tl, pair, err := Project(obs, mod, 6)
	require.NoError(t, err)
	_, err = ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrNoValidSamples)
}

func TestComputeMetrics_NonFiniteProjectionsAreUnprojectable(t *testing.T) {
	tl := Timeline{Step: 6 * time.Minute, Times: []time.Time{at(0), at(6), at(12)}}
	pair := AlignedPair{
		Observed: []Projection{{1, true}, {math.Inf(1), true}, {2, true}},
		Model:    []Projection{{1, true}, {5, true}, {1, true}},
	}

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)
	assert.Equal(t, 2, m.SampleCount)
	// diffs 0 and -1
	assert.InDelta(t, math.Sqrt(0.5), m.RMSD, 1e-12)
	assert.Equal(t, at(12), m.ObservedPeakTime)
	assert.Equal(t, at(6), m.ModelPeakTime)
	assert.InDelta(t, -3.0, m.PeakError, 1e-12)
	assert.Equal(t, 6.0, m.PeakLagMinutes)
}

func TestComputeMetrics_NaNProjectionsCountNothing(t *testing.T) {
	tl := Timeline{Step: 6 * time.Minute, Times: []time.Time{at(0), at(6)}}
	pair := AlignedPair{
		Observed: []Projection{{math.NaN(), true}, {math.NaN(), true}},
		Model:    []Projection{{1, true}, {2, true}},
	}

	m, err := ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrNoValidSamples)
	assert.Zero(t, m.SampleCount)
}

func TestComputeMetrics_OverflowingDifference(t *testing.T) {
	tl := Timeline{Step: 6 * time.Minute, Times: []time.Time{at(0)}}
	pair := AlignedPair{
		Observed: []Projection{{-math.MaxFloat64, true}},
		Model:    []Projection{{math.MaxFloat64, true}},
	}

	_, err := ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrNonFiniteResult)
}

func TestComputeMetrics_ExtremeSeriesStayFinite(t *testing.T) {
	s := Clean(Series{{Time: at(0), Value: -1.7e308}, {Time: at(12), Value: 1.7e308}})

	tl, pair, err := Project(s, s, 6)
	require.NoError(t, err)
	require.Equal(t, 3, tl.Len())
	assert.True(t, pair.Observed[1].OK)
	assert.InDelta(t, 0.0, pair.Observed[1].Value, 1e-300)

	m, err := ComputeMetrics(pair, tl)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.RMSD)
	assert.Equal(t, at(12), m.ObservedPeakTime)
}

func TestRMS(t *testing.T) {
	v, err := RMS([]float64{3, math.NaN(), -4})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(12.5), v, 1e-12)

	_, err = RMS([]float64{math.NaN()})
	require.ErrorIs(t, err, ErrNoValidSamples)

	_, err = RMS(nil)
	require.ErrorIs(t, err, ErrNoValidSamples)
}
