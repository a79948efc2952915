package runner

import (
	"time"

	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
)

const frame = 16.67

// fixedConfig returns the default config with speed progression disabled.
func fixedConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	config.ApplyPreset(&cfg, config.DifficultyFixed)
	return cfg
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeSink struct {
	started int
	ended   []Result
}

func (s *fakeSink) SessionStarted()       { s.started++ }
func (s *fakeSink) SessionEnded(r Result) { s.ended = append(s.ended, r) }

// seqRand replays a fixed sequence of values, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// mutableInput lets a test change held controls between ticks.
type mutableInput struct {
	set core.ControlSet
}

func (m *mutableInput) ActiveControls() core.ControlSet { return m.set }

func newTestSession(cfg config.RunnerConfig) (*Session, *fakeSink, *mutableInput) {
	sink := &fakeSink{}
	in := &mutableInput{}
	s := NewSession(cfg, core.DefaultConfig(), Deps{
		Clock: newFakeClock(),
		Input: in,
		Rand:  &seqRand{vals: []float64{0.5}},
		Sink:  sink,
	})
	return s, sink, in
}

func hasEvent(events []Event, want Event) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}
