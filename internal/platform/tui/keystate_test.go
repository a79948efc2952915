package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/catrun/internal/core"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestKeyStateHoldWindow(t *testing.T) {
	clock := newFakeClock()
	ks := NewKeyState(clock, 100*time.Millisecond)

	if !ks.ActiveControls().Empty() {
		t.Fatal("new key state should be empty")
	}

	ks.Press(core.ControlAction)
	if !ks.ActiveControls().Has(core.ControlAction) {
		t.Fatal("pressed control should be active")
	}

	clock.Advance(99 * time.Millisecond)
	if !ks.ActiveControls().Has(core.ControlAction) {
		t.Error("control should stay active inside the hold window")
	}

	clock.Advance(time.Millisecond)
	if ks.ActiveControls().Has(core.ControlAction) {
		t.Error("control should expire after the hold window")
	}
}

func TestKeyStateRepeatExtendsHold(t *testing.T) {
	clock := newFakeClock()
	ks := NewKeyState(clock, 100*time.Millisecond)

	for i := 0; i < 10; i++ {
		ks.Press(core.ControlDown)
		clock.Advance(50 * time.Millisecond)
		if !ks.ActiveControls().Has(core.ControlDown) {
			t.Fatalf("auto-repeat %d dropped the control", i)
		}
	}
}

func TestKeyStateOpposites(t *testing.T) {
	tests := []struct {
		name     string
		first    core.Control
		second   core.Control
		expected core.ControlSet
	}{
		{"down cancels up", core.ControlUp, core.ControlDown, core.NewControlSet(core.ControlDown)},
		{"down cancels action", core.ControlAction, core.ControlDown, core.NewControlSet(core.ControlDown)},
		{"action cancels down", core.ControlDown, core.ControlAction, core.NewControlSet(core.ControlAction)},
		{"both jump keys", core.ControlUp, core.ControlAction, core.NewControlSet(core.ControlUp, core.ControlAction)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks := NewKeyState(newFakeClock(), 0)
			ks.Press(tt.first)
			ks.Press(tt.second)
			if got := ks.ActiveControls(); got != tt.expected {
				t.Errorf("ActiveControls() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestKeyStateReset(t *testing.T) {
	ks := NewKeyState(newFakeClock(), 0)
	ks.Press(core.ControlUp)
	ks.Press(core.ControlAction)

	ks.Reset()
	if !ks.ActiveControls().Empty() {
		t.Errorf("after Reset = %v, expected none", ks.ActiveControls())
	}

	// Out of range controls are ignored.
	ks.Press(core.Control(200))
	if !ks.ActiveControls().Empty() {
		t.Error("unknown control should not become active")
	}
}

func TestKeyStateDefaultHold(t *testing.T) {
	clock := newFakeClock()
	ks := NewKeyState(clock, 0)
	ks.Press(core.ControlUp)

	clock.Advance(DefaultHoldWindow - time.Millisecond)
	if !ks.ActiveControls().Has(core.ControlUp) {
		t.Error("default hold window too short")
	}
	clock.Advance(time.Millisecond)
	if ks.ActiveControls().Has(core.ControlUp) {
		t.Error("default hold window too long")
	}
}
