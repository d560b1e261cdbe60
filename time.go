package particles

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
}

func NewTime(now time.Time) *Time {
	return &Time{
		Time: now,
		Dt:   0,
	}
}

// Advance moves the clock to now and records the elapsed step. A clock that
// goes backwards yields a zero step.
func (t *Time) Advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	if t.Dt < 0 {
		t.Dt = 0
	}
	t.Time = now
}

// Seconds returns the last step in seconds, the unit every particle operation
// takes.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}
