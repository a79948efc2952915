package tui

import (
	"time"

	"github.com/vovakirdan/catrun/internal/core"
	"github.com/vovakirdan/catrun/internal/runner"
)

// DefaultHoldWindow is how long a key counts as held after its last press.
const DefaultHoldWindow = 250 * time.Millisecond

const controlCount = int(core.ControlAction) + 1

// KeyState turns key presses into held controls. Terminals report presses
// and auto-repeats but no releases, so a control stays active until its hold
// window passes without another press.
type KeyState struct {
	clock   runner.Clock
	hold    time.Duration
	pressed [controlCount]time.Time
}

// NewKeyState creates a key state. A nil clock uses the system clock; a
// non-positive hold uses DefaultHoldWindow.
func NewKeyState(clock runner.Clock, hold time.Duration) *KeyState {
	if clock == nil {
		clock = runner.SystemClock{}
	}
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyState{clock: clock, hold: hold}
}

// opposite returns the control that a press of c cancels.
func opposite(c core.Control) []core.Control {
	switch c {
	case core.ControlUp, core.ControlAction:
		return []core.Control{core.ControlDown}
	case core.ControlDown:
		return []core.Control{core.ControlUp, core.ControlAction}
	}
	return nil
}

// Press marks c as held and releases the opposite direction.
func (k *KeyState) Press(c core.Control) {
	if int(c) >= controlCount {
		return
	}
	k.pressed[c] = k.clock.Now()
	for _, o := range opposite(c) {
		k.pressed[o] = time.Time{}
	}
}

// Reset releases every control.
func (k *KeyState) Reset() {
	k.pressed = [controlCount]time.Time{}
}

// ActiveControls implements runner.InputSource.
func (k *KeyState) ActiveControls() core.ControlSet {
	now := k.clock.Now()
	var set core.ControlSet
	for i, at := range k.pressed {
		if !at.IsZero() && now.Sub(at) < k.hold {
			set = set.With(core.Control(i))
		}
	}
	return set
}
