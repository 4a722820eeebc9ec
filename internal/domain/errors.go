package domain

import "errors"

// Sentinel errors returned by the verification core. Callers match them with
// errors.Is; wrapped variants carry the offending index or station.
var (
	// ErrEmptyInput is returned by the nearest-value lookups when given no items.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnsortedSeries is returned by Project when a series was not passed
	// through Clean first (duplicate, decreasing, missing or masked samples).
	ErrUnsortedSeries = errors.New("series is not cleaned")

	// ErrInvalidStep is returned by Project for a non-positive resampling step.
	ErrInvalidStep = errors.New("step must be positive")

	// ErrNoValidSamples means no reference point had both an observed and a
	// model value. Reports treat it as "metrics unavailable".
	ErrNoValidSamples = errors.New("no valid samples")

	// ErrTimelineTooLong is returned by Project when the extent and step need
	// more reference points than the configured limit.
	ErrTimelineTooLong = errors.New("timeline too long")

	// ErrNonFiniteResult means a statistic overflowed to an infinite value.
	ErrNonFiniteResult = errors.New("non-finite result")

	// ErrLengthMismatch is returned when an aligned pair does not match its timeline.
	ErrLengthMismatch = errors.New("aligned pair does not match timeline")
)
