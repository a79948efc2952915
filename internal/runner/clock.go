package runner

import (
	"math"
	"time"

	"github.com/vovakirdan/catrun/internal/core"
)

// Clock supplies monotonic timestamps to the frame loop.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// InputSource reports the controls held at the moment it is polled.
// The session polls it once per tick.
type InputSource interface {
	ActiveControls() core.ControlSet
}

// FixedInput is an InputSource that always reports the same controls.
type FixedInput core.ControlSet

// ActiveControls returns the fixed set.
func (f FixedInput) ActiveControls() core.ControlSet {
	return core.ControlSet(f)
}

// Rand is the random source used by the spawner. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// FrameClock converts successive clock readings into frame deltas.
type FrameClock struct {
	clock Clock
	last  time.Time
}

// NewFrameClock creates a frame clock based at the current time.
func NewFrameClock(c Clock) *FrameClock {
	if c == nil {
		c = SystemClock{}
	}
	return &FrameClock{clock: c, last: c.Now()}
}

// Delta returns the milliseconds elapsed since the previous call or Rebase.
func (f *FrameClock) Delta() float64 {
	now := f.clock.Now()
	dt := float64(now.Sub(f.last)) / float64(time.Millisecond)
	f.last = now
	return dt
}

// Rebase discards the time elapsed since the previous reading, so that a
// resumed session does not see the pause as one huge frame.
func (f *FrameClock) Rebase() {
	f.last = f.clock.Now()
}

// ClampDelta sanitizes a frame delta. Non-finite or negative values become
// one nominal frame; values above maxMs are capped.
func ClampDelta(dt, nominalMs, maxMs float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return nominalMs
	}
	if dt > maxMs {
		return maxMs
	}
	return dt
}
