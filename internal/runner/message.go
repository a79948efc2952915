package runner

import (
	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
)

// FloatingMessage is short feedback text that drifts toward a target and
// fades out.
type FloatingMessage struct {
	Text             string
	X, Y             float64
	TargetX, TargetY float64
	Color            core.Color
	Timer            float64 // ms alive
	Alpha            float64 // 1 opaque, 0 gone

	Deleted bool
}

// NewFloatingMessage creates an opaque message at (x, y).
func NewFloatingMessage(text string, x, y, tx, ty float64, c core.Color) *FloatingMessage {
	return &FloatingMessage{
		Text:    text,
		X:       x,
		Y:       y,
		TargetX: tx,
		TargetY: ty,
		Color:   c,
		Alpha:   1,
	}
}

func (m *FloatingMessage) deleted() bool { return m.Deleted }

func (m *FloatingMessage) update(dt, factor float64, cfg config.MessageConfig) {
	ease := min(cfg.Ease*factor, 1)
	m.X += (m.TargetX - m.X) * ease
	m.Y += (m.TargetY - m.Y) * ease
	m.Y -= cfg.RiseSpeed * factor
	m.Timer += dt

	if m.Timer > cfg.TTL*cfg.FadeStart {
		m.Alpha -= cfg.FadeRate * factor
	}
	if m.Timer > cfg.TTL || m.Alpha <= 0 {
		m.Alpha = max(m.Alpha, 0)
		m.Deleted = true
	}
}
