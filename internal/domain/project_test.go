package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_IntersectionInterpolates(t *testing.T) {
	obs := Series{{Time: at(0), Value: 0}, {Time: at(12), Value: 1.2}, {Time: at(24), Value: 0}}
	mod := Series{{Time: at(6), Value: 1}, {Time: at(18), Value: 2}, {Time: at(30), Value: 3}}

	tl, pair, err := Project(obs, mod, 6)
	require.NoError(t, err)

	assert.Equal(t, 6*time.Minute, tl.Step)
	assert.Equal(t, at(6), tl.Start)
	assert.Equal(t, []time.Time{at(6), at(12), at(18), at(24)}, tl.Times)

	require.Len(t, pair.Observed, 4)
	require.Len(t, pair.Model, 4)
	assert.InDeltaSlice(t, []float64{0.6, 1.2, 0.6, 0}, values(pair.Observed), 1e-12)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2, 2.5}, values(pair.Model), 1e-12)
	for i := range tl.Times {
		assert.True(t, pair.Observed[i].OK)
		assert.True(t, pair.Model[i].OK)
	}
}

func TestProject_UnionMarksUnprojectable(t *testing.T) {
	obs := Series{{Time: at(0), Value: 1}, {Time: at(10), Value: 2}}
	mod := Series{{Time: at(10), Value: 1}, {Time: at(20), Value: 2}}

	tl, pair, err := Project(obs, mod, 10, WithExtent(ExtentUnion))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(0), at(10), at(20)}, tl.Times)
	assert.Equal(t, []Projection{{1, true}, {2, true}, {}}, pair.Observed)
	assert.Equal(t, []Projection{{}, {1, true}, {2, true}}, pair.Model)
}

func TestProject_TimelineStopsAtExtentEnd(t *testing.T) {
	obs := Series{{Time: at(0), Value: 1}, {Time: at(20), Value: 1}}
	mod := Series{{Time: at(0), Value: 1}, {Time: at(20), Value: 1}}

	tl, _, err := Project(obs, mod, 6)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{at(0), at(6), at(12), at(18)}, tl.Times)
}

func TestProject_NoOverlap(t *testing.T) {
	obs := Series{{Time: at(0), Value: 1}, {Time: at(10), Value: 2}}
	mod := Series{{Time: at(30), Value: 1}, {Time: at(40), Value: 2}}

	tl, pair, err := Project(obs, mod, 6)
	require.NoError(t, err)
	assert.Zero(t, tl.Len())
	assert.Empty(t, pair.Observed)
	assert.Empty(t, pair.Model)

	_, err = ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrNoValidSamples)
}

func TestProject_EmptySeries(t *testing.T) {
	mod := Series{{Time: at(0), Value: 1}, {Time: at(6), Value: 2}}

	tl, _, err := Project(Series{}, mod, 6)
	require.NoError(t, err)
	assert.Zero(t, tl.Len())

	tl, pair, err := Project(Series{}, mod, 6, WithExtent(ExtentUnion))
	require.NoError(t, err)
	assert.Equal(t, 2, tl.Len())
	assert.Equal(t, []Projection{{}, {}}, pair.Observed)

	_, err = ComputeMetrics(pair, tl)
	require.ErrorIs(t, err, ErrNoValidSamples)
}

func TestProject_SingleSampleSeries(t *testing.T) {
	obs := Series{{Time: at(12), Value: 0.4}}
	mod := Series{{Time: at(0), Value: 0}, {Time: at(24), Value: 1}}

	tl, pair, err := Project(obs, mod, 6)
	require.NoError(t, err)
	require.Equal(t, []time.Time{at(12)}, tl.Times)
	assert.Equal(t, Projection{0.4, true}, pair.Observed[0])
	assert.InDelta(t, 0.5, pair.Model[0].Value, 1e-12)
}

func TestProject_InvalidStep(t *testing.T) {
	s := Series{{Time: at(0), Value: 1}}
	for _, step := range []int{0, -6, math.MaxInt} {
		_, _, err := Project(s, s, step)
		require.ErrorIs(t, err, ErrInvalidStep)
	}
}

func TestProject_TimelineLimit(t *testing.T) {
	long := Series{
		{Time: at(0), Value: 1},
		{Time: at(0).AddDate(3, 0, 0), Value: 2},
	}

	_, _, err := Project(long, long, 1)
	require.ErrorIs(t, err, ErrTimelineTooLong)

	ancient := Series{
		{Time: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1},
		{Time: at(0), Value: 2},
	}
	_, _, err = Project(ancient, ancient, 1)
	require.ErrorIs(t, err, ErrTimelineTooLong)

	short := Series{{Time: at(0), Value: 1}, {Time: at(60), Value: 2}}
	_, _, err = Project(short, short, 6, WithMaxPoints(10))
	require.ErrorIs(t, err, ErrTimelineTooLong)

	tl, _, err := Project(short, short, 6, WithMaxPoints(11))
	require.NoError(t, err)
	assert.Equal(t, 11, tl.Len())
}

func TestProject_RejectsUncleanedSeries(t *testing.T) {
	good := Series{{Time: at(0), Value: 1}, {Time: at(6), Value: 2}}
	tests := []struct {
		name string
		s    Series
	}{
		{"decreasing", Series{{Time: at(6), Value: 1}, {Time: at(0), Value: 2}}},
		{"duplicate", Series{{Time: at(0), Value: 1}, {Time: at(0), Value: 2}}},
		{"missing value", Series{{Time: at(0), Value: 1}, MissingSample(at(6))}},
		{"masked", Series{{Time: at(0), Value: 1, Masked: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Project(tt.s, good, 6)
			require.ErrorIs(t, err, ErrUnsortedSeries)

			_, _, err = Project(good, tt.s, 6)
			require.ErrorIs(t, err, ErrUnsortedSeries)
		})
	}
}

func TestParseExtent(t *testing.T) {
	e, err := ParseExtent("union")
	require.NoError(t, err)
	assert.Equal(t, ExtentUnion, e)

	e, err = ParseExtent("")
	require.NoError(t, err)
	assert.Equal(t, ExtentIntersection, e)
	assert.Equal(t, "intersection", e.String())

	_, err = ParseExtent("everything")
	require.Error(t, err)
}

func values(ps []Projection) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}
	return out
}
