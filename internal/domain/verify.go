package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Options controls how a station pair is verified.
type Options struct {
	StepMinutes      int           // used when the pair carries no step
	Extent           Extent        // timeline extent policy
	PublicationDelay time.Duration // for resolving the current cycle
}

// DefaultOptions returns the reference verification settings: a 6-minute
// intersection timeline and the standard publication schedule.
func DefaultOptions() Options {
	return Options{
		StepMinutes:      DefaultStepMinutes,
		Extent:           ExtentIntersection,
		PublicationDelay: DefaultPublicationDelay,
	}
}

// Verify cleans both series of a station pair, projects them onto a common
// timeline and computes the verification metrics. A pair with no usable
// overlap yields an unavailable result rather than an error; errors are
// reserved for invalid input such as a non-positive step.
func Verify(pair StationPair, opts Options) (VerificationResult, error) {
	step := pair.StepMinutes
	if step == 0 {
		step = opts.StepMinutes
	}

	cycle := CurrentCycleFor(opts.PublicationDelay)
	if pair.Cycle != nil {
		cycle = *pair.Cycle
	}

	res := VerificationResult{
		ID:          generateID(pair.Station.ID, cycle, step, opts.Extent),
		Station:     pair.Station,
		Cycle:       cycle.Cycle.String(),
		CycleDate:   cycle.DateString(),
		StepMinutes: step,
		Extent:      opts.Extent.String(),
		ProcessedAt: clock.Now(),
	}

	tl, aligned, err := Project(Clean(pair.Observed), Clean(pair.Model), step, WithExtent(opts.Extent))
	if err != nil {
		return VerificationResult{}, fmt.Errorf("verify station %s: %w", pair.Station.ID, err)
	}
	res.TimelineLength = tl.Len()

	m, err := ComputeMetrics(aligned, tl)
	switch {
	case errors.Is(err, ErrNoValidSamples):
		res.Reason = err.Error()
		res.Label = FormatLabel(pair.Station, nil)
		return res, nil
	case err != nil:
		return VerificationResult{}, fmt.Errorf("verify station %s: %w", pair.Station.ID, err)
	}

	res.Available = true
	res.RMSD = &m.RMSD
	res.PeakError = &m.PeakError
	res.PeakLagMinutes = &m.PeakLagMinutes
	res.ObservedPeakTime = &m.ObservedPeakTime
	res.ModelPeakTime = &m.ModelPeakTime
	res.SampleCount = m.SampleCount
	res.Label = FormatLabel(pair.Station, &m.RMSD)
	return res, nil
}

// FormatLabel renders the report title for a station, e.g.
// "The Battery, NY, RMSD=0.123 meters". The RMSD part is omitted when it is
// unavailable or zero.
func FormatLabel(st Station, rmsd *float64) string {
	name := st.Name
	if name == "" {
		name = st.ID
	}
	if rmsd == nil || *rmsd <= 0 {
		return name
	}
	return fmt.Sprintf("%s, RMSD=%.3f meters", name, *rmsd)
}

// generateID produces a deterministic ID so replays of the same station and
// cycle overwrite rather than duplicate downstream.
func generateID(stationID string, cycle CycleRecord, step int, ext Extent) string {
	input := fmt.Sprintf("%s|%s|%d|%s", stationID, cycle, step, ext)
	hash := sha256.Sum256([]byte(input))
	return stationID + "-" + hex.EncodeToString(hash[:8])
}
