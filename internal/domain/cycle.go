package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// cycleInterval is the spacing between nominal forecast cycles.
const cycleInterval = 6 * time.Hour

// DefaultPublicationDelay is how long after its nominal hour a cycle's output
// is available: 00z at 05:20, 06z at 11:20, 12z at 17:20, 18z at 23:20 UTC.
const DefaultPublicationDelay = 5*time.Hour + 20*time.Minute

// Cycle is the nominal UTC hour of a forecast production run.
type Cycle int

// Production cycles.
const (
	Cycle00 Cycle = 0
	Cycle06 Cycle = 6
	Cycle12 Cycle = 12
	Cycle18 Cycle = 18
)

// String renders the cycle the way products are named, e.g. "t06z".
func (c Cycle) String() string {
	return fmt.Sprintf("t%02dz", int(c))
}

// ParseCycle accepts "t06z", "06z", "06" or "6".
func ParseCycle(s string) (Cycle, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	v = strings.TrimPrefix(v, "t")
	v = strings.TrimSuffix(v, "z")
	h, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse cycle %q: %w", s, err)
	}
	switch c := Cycle(h); c {
	case Cycle00, Cycle06, Cycle12, Cycle18:
		return c, nil
	default:
		return 0, fmt.Errorf("parse cycle %q: hour must be 00, 06, 12 or 18", s)
	}
}

// CycleRecord identifies a forecast cycle by hour and the calendar date it
// nominally belongs to.
type CycleRecord struct {
	Cycle    Cycle     `json:"cycle"`
	BaseDate time.Time `json:"base_date"`
}

// DateString formats the base date as YYYYMMDD.
func (r CycleRecord) DateString() string {
	return r.BaseDate.Format("20060102")
}

// NominalTime is the cycle's nominal issue instant.
func (r CycleRecord) NominalTime() time.Time {
	return r.BaseDate.Add(time.Duration(r.Cycle) * time.Hour)
}

func (r CycleRecord) String() string {
	return r.DateString() + " " + r.Cycle.String()
}

// LatestCycle returns the most recent cycle whose output was published at or
// before now, given the delay between a cycle's nominal hour and publication.
// Before the day's 00z is published this is the previous day's 18z.
func LatestCycle(now time.Time, delay time.Duration) CycleRecord {
	// 6h boundaries of the zero time fall on 00/06/12/18 UTC.
	nominal := now.UTC().Add(-delay).Truncate(cycleInterval)
	return CycleRecord{
		Cycle:    Cycle(nominal.Hour()),
		BaseDate: time.Date(nominal.Year(), nominal.Month(), nominal.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// CurrentCycle evaluates LatestCycle against the package clock at call time
// using the default publication schedule.
func CurrentCycle() CycleRecord {
	return CurrentCycleFor(DefaultPublicationDelay)
}

// CurrentCycleFor is CurrentCycle with a custom publication delay.
func CurrentCycleFor(delay time.Duration) CycleRecord {
	return LatestCycle(clock.Now(), delay)
}
