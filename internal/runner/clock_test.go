package runner

import (
	"math"
	"testing"
	"time"
)

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		expected float64
	}{
		{"normal frame", 16.67, 16.67},
		{"zero", 0, 0},
		{"negative", -5, frame},
		{"nan", math.NaN(), frame},
		{"positive infinity", math.Inf(1), frame},
		{"negative infinity", math.Inf(-1), frame},
		{"at max", 1000, 1000},
		{"above max", 5000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.dt, frame, 1000); got != tt.expected {
				t.Errorf("ClampDelta(%v) = %v, expected %v", tt.dt, got, tt.expected)
			}
		})
	}
}

func TestFrameClock(t *testing.T) {
	clock := newFakeClock()
	fc := NewFrameClock(clock)

	clock.Advance(20 * time.Millisecond)
	if dt := fc.Delta(); dt != 20 {
		t.Errorf("Delta() = %v, expected 20", dt)
	}

	clock.Advance(5 * time.Second)
	fc.Rebase()
	clock.Advance(10 * time.Millisecond)
	if dt := fc.Delta(); dt != 10 {
		t.Errorf("Delta() after Rebase = %v, expected 10", dt)
	}
}

func TestFixedInput(t *testing.T) {
	in := FixedInput(0)
	if !in.ActiveControls().Empty() {
		t.Error("zero FixedInput should report no controls")
	}
}
