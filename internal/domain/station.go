package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// estofsV1Multiplier converts ESTOFS v1 Pacific point coordinates to degrees.
const estofsV1Multiplier = 0.01745323168310549

// ParseStationPair deserializes a RawEvent's value into a StationPair.
// Model coordinates are normalized to degrees based on the model title.
func ParseStationPair(raw RawEvent) (StationPair, error) {
	var rec StationPairRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return StationPair{}, fmt.Errorf("parse station pair: %w", err)
	}
	return stationPairFromRecord(rec)
}

func stationPairFromRecord(rec StationPairRecord) (StationPair, error) {
	id := strings.TrimSpace(rec.StationID)
	if id == "" {
		return StationPair{}, errors.New("parse station pair: station_id is required")
	}
	if rec.StepMinutes < 0 {
		return StationPair{}, fmt.Errorf("parse station pair %s: %d minutes: %w", id, rec.StepMinutes, ErrInvalidStep)
	}

	lon, lat, version := NormalizeCoordinates(rec.ModelTitle, rec.Lon, rec.Lat)
	pair := StationPair{
		Station: Station{
			ID:           id,
			Name:         strings.TrimSpace(rec.StationName),
			Lon:          lon,
			Lat:          lat,
			ModelVersion: version,
		},
		StepMinutes: rec.StepMinutes,
		Observed:    seriesFromRecords(rec.Observed),
		Model:       seriesFromRecords(rec.Model),
	}

	if rec.CycleDate != "" || rec.Cycle != "" {
		cr, err := parseCycleRecord(rec.CycleDate, rec.Cycle)
		if err != nil {
			return StationPair{}, fmt.Errorf("parse station pair %s: %w", id, err)
		}
		pair.Cycle = &cr
	}
	return pair, nil
}

// parseCycleRecord builds a CycleRecord from "YYYYMMDD" and a cycle label.
func parseCycleRecord(date, cycle string) (CycleRecord, error) {
	d, err := time.Parse("20060102", strings.TrimSpace(date))
	if err != nil {
		return CycleRecord{}, fmt.Errorf("parse cycle date %q: %w", date, err)
	}
	c, err := ParseCycle(cycle)
	if err != nil {
		return CycleRecord{}, err
	}
	return CycleRecord{Cycle: c, BaseDate: d.UTC()}, nil
}

func seriesFromRecords(recs []SampleRecord) Series {
	s := make(Series, len(recs))
	for i, r := range recs {
		v := math.NaN()
		if r.Value != nil {
			v = *r.Value
		}
		s[i] = Sample{Time: r.Time.UTC(), Value: v, Masked: r.Masked}
	}
	return s
}

// NormalizeCoordinates detects the ESTOFS version from the model output title
// and scales station coordinates to degrees. Pacific (v1) output needs a pi/180
// factor; v2 output is already in degrees.
func NormalizeCoordinates(title string, lon, lat float64) (float64, float64, int) {
	if strings.Contains(title, "PACIFIC") {
		return lon * estofsV1Multiplier, lat * estofsV1Multiplier, 1
	}
	return lon, lat, 2
}
