package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// It is read on every call, never captured once at start-up.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used by CurrentCycle and Verify. Pass nil to
// reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
