package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultStepMinutes is the reference timeline resolution used by reports.
const DefaultStepMinutes = 6

// Extent selects which time span the reference timeline covers.
type Extent int

const (
	// ExtentIntersection spans only the time both series cover.
	ExtentIntersection Extent = iota
	// ExtentUnion spans from the earlier start to the later end. Points outside
	// one series' range are unprojectable for that series.
	ExtentUnion
)

func (e Extent) String() string {
	switch e {
	case ExtentIntersection:
		return "intersection"
	case ExtentUnion:
		return "union"
	default:
		return fmt.Sprintf("extent(%d)", int(e))
	}
}

// ParseExtent maps "intersection" or "union" to an Extent.
func ParseExtent(s string) (Extent, error) {
	switch s {
	case "intersection", "":
		return ExtentIntersection, nil
	case "union":
		return ExtentUnion, nil
	default:
		return 0, fmt.Errorf("unknown extent %q", s)
	}
}

// Timeline is a synthetic uniform time grid.
type Timeline struct {
	Start time.Time
	Step  time.Duration
	Times []time.Time
}

// Len returns the number of reference points.
func (tl Timeline) Len() int { return len(tl.Times) }

// Projection is a series value at a reference point. OK is false when the
// point lies outside the series' observed range.
type Projection struct {
	Value float64
	OK    bool
}

// AlignedPair holds observed and model values indexed by the same timeline.
type AlignedPair struct {
	Observed []Projection
	Model    []Projection
}

// DefaultMaxTimelinePoints caps the reference timeline: a little over a year
// of 6-minute points.
const DefaultMaxTimelinePoints = 100_000

// maxStepMinutes keeps the step representable as a time.Duration.
const maxStepMinutes = int64(math.MaxInt64 / int64(time.Minute))

type projectOptions struct {
	extent    Extent
	maxPoints int
}

// ProjectOption configures Project.
type ProjectOption func(*projectOptions)

// WithExtent sets the timeline extent policy. The default is ExtentIntersection.
func WithExtent(e Extent) ProjectOption {
	return func(o *projectOptions) {
		o.extent = e
	}
}

// WithMaxPoints sets the largest timeline Project will build. Non-positive
// values keep DefaultMaxTimelinePoints.
func WithMaxPoints(n int) ProjectOption {
	return func(o *projectOptions) {
		if n > 0 {
			o.maxPoints = n
		}
	}
}

// Project resamples two cleaned series onto a uniform timeline with the given
// step, linearly interpolating between bracketing samples. Values are never
// extrapolated. Empty series or non-overlapping intersections yield an empty
// timeline.
func Project(observed, model Series, stepMinutes int, opts ...ProjectOption) (Timeline, AlignedPair, error) {
	o := projectOptions{extent: ExtentIntersection, maxPoints: DefaultMaxTimelinePoints}
	for _, opt := range opts {
		opt(&o)
	}

	if stepMinutes <= 0 || int64(stepMinutes) > maxStepMinutes {
		return Timeline{}, AlignedPair{}, fmt.Errorf("project: %d minutes: %w", stepMinutes, ErrInvalidStep)
	}
	if err := checkCleaned(observed); err != nil {
		return Timeline{}, AlignedPair{}, fmt.Errorf("project observed: %w", err)
	}
	if err := checkCleaned(model); err != nil {
		return Timeline{}, AlignedPair{}, fmt.Errorf("project model: %w", err)
	}

	step := time.Duration(stepMinutes) * time.Minute
	tl := Timeline{Step: step}
	start, end, ok := extent(observed, model, o.extent)
	if !ok {
		return tl, AlignedPair{}, nil
	}

	// Sub saturates for spans beyond ~292 years, which still exceeds any cap.
	n := int64(end.Sub(start)/step) + 1
	if n > int64(o.maxPoints) {
		return Timeline{}, AlignedPair{}, fmt.Errorf("project: %s to %s at %d minutes needs %d points, limit %d: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), stepMinutes, n, o.maxPoints, ErrTimelineTooLong)
	}

	tl.Start = start
	tl.Times = make([]time.Time, 0, n)
	for t := start; !t.After(end); t = t.Add(step) {
		tl.Times = append(tl.Times, t)
	}

	pair := AlignedPair{
		Observed: make([]Projection, len(tl.Times)),
		Model:    make([]Projection, len(tl.Times)),
	}
	for i, t := range tl.Times {
		pair.Observed[i] = interpolate(observed, t)
		pair.Model[i] = interpolate(model, t)
	}
	return tl, pair, nil
}

// extent returns the timeline bounds for the policy, or false if there is none.
func extent(a, b Series, e Extent) (time.Time, time.Time, bool) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return time.Time{}, time.Time{}, false
	case len(a) == 0 || len(b) == 0:
		if e == ExtentIntersection {
			return time.Time{}, time.Time{}, false
		}
		s := a
		if len(s) == 0 {
			s = b
		}
		return s.Start(), s.End(), true
	}

	if e == ExtentUnion {
		return earlier(a.Start(), b.Start()), later(a.End(), b.End()), true
	}
	start, end := later(a.Start(), b.Start()), earlier(a.End(), b.End())
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// interpolate returns the linear interpolation of s at t, or an unprojectable
// value if t is outside s.
func interpolate(s Series, t time.Time) Projection {
	if len(s) == 0 || t.Before(s.Start()) || t.After(s.End()) {
		return Projection{}
	}
	// First sample at or after t.
	i := sort.Search(len(s), func(i int) bool { return !s[i].Time.Before(t) })
	if s[i].Time.Equal(t) {
		return Projection{Value: s[i].Value, OK: true}
	}
	lo, hi := s[i-1], s[i]
	frac := float64(t.Sub(lo.Time)) / float64(hi.Time.Sub(lo.Time))
	// Weighted form stays finite for any finite endpoints.
	return Projection{Value: lo.Value*(1-frac) + hi.Value*frac, OK: true}
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
