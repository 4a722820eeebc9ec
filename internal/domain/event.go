package domain

import (
	"context"
	"time"
)

// SampleRecord is one sample on the wire. A null value is a missing reading.
type SampleRecord struct {
	Time   time.Time `json:"t"`
	Value  *float64  `json:"v"`
	Masked bool      `json:"masked,omitempty"`
}

// StationPairRecord is the JSON produced by the station loader: observed water
// levels and the model time series extracted at the same station.
type StationPairRecord struct {
	StationID   string         `json:"station_id"`
	StationName string         `json:"station_name"`
	Lon         float64        `json:"lon"`
	Lat         float64        `json:"lat"`
	ModelTitle  string         `json:"model_title,omitempty"` // netCDF global title
	CycleDate   string         `json:"cycle_date,omitempty"`  // YYYYMMDD
	Cycle       string         `json:"cycle,omitempty"`       // e.g. "t06z"
	StepMinutes int            `json:"step_minutes,omitempty"`
	Observed    []SampleRecord `json:"observed"`
	Model       []SampleRecord `json:"model"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Station identifies a verification site. Coordinates are in degrees.
type Station struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
	ModelVersion int     `json:"model_version,omitempty"`
}

// StationPair is a parsed observed/model pair ready for verification.
type StationPair struct {
	Station     Station
	Cycle       *CycleRecord // nil means the current cycle
	StepMinutes int          // 0 means the configured default
	Observed    Series
	Model       Series
}

// VerificationResult is the report record for one station and cycle. Metric
// fields are nil when Available is false.
type VerificationResult struct {
	ID               string     `json:"id"`
	Station          Station    `json:"station"`
	Cycle            string     `json:"cycle"`
	CycleDate        string     `json:"cycle_date"`
	StepMinutes      int        `json:"step_minutes"`
	Extent           string     `json:"extent"`
	Available        bool       `json:"available"`
	Reason           string     `json:"reason,omitempty"`
	RMSD             *float64   `json:"rmsd,omitempty"`
	PeakError        *float64   `json:"peak_error,omitempty"`
	PeakLagMinutes   *float64   `json:"peak_lag_minutes,omitempty"`
	ObservedPeakTime *time.Time `json:"observed_peak_time,omitempty"`
	ModelPeakTime    *time.Time `json:"model_peak_time,omitempty"`
	SampleCount      int        `json:"sample_count"`
	TimelineLength   int        `json:"timeline_length"`
	Label            string     `json:"label"`
	ProcessedAt      time.Time  `json:"processed_at"`
}
