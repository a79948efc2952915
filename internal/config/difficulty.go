package config

import "github.com/vovakirdan/catrun/internal/core"

// DifficultyCurve maps elapsed play time to game speed using a quadratic
// ease-out: speed rises quickly early on and flattens as it approaches
// MaxSpeed at TargetSeconds.
type DifficultyCurve struct {
	cfg DifficultyConfig
}

// NewDifficultyCurve creates a curve from the difficulty section.
func NewDifficultyCurve(cfg DifficultyConfig) *DifficultyCurve {
	return &DifficultyCurve{cfg: cfg}
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyCurve) IsEnabled() bool {
	return d.cfg.Enabled
}

// Initial returns the speed at the start of a session.
func (d *DifficultyCurve) Initial() float64 {
	return d.cfg.InitialSpeed
}

// Max returns the speed ceiling.
func (d *DifficultyCurve) Max() float64 {
	return d.cfg.MaxSpeed
}

// Progress returns eased progress in [0, 1] for the given play time.
func (d *DifficultyCurve) Progress(elapsedMs float64) float64 {
	if !d.cfg.Enabled || d.cfg.TargetSeconds <= 0 {
		return 0
	}
	p := core.ClampF(elapsedMs/1000/d.cfg.TargetSeconds, 0.0, 1.0)
	return p * (2 - p)
}

// Speed returns the game speed for the given play time.
// The result is non-decreasing in elapsedMs and stays in [Initial, Max].
func (d *DifficultyCurve) Speed(elapsedMs float64) float64 {
	return d.cfg.InitialSpeed + (d.cfg.MaxSpeed-d.cfg.InitialSpeed)*d.Progress(elapsedMs)
}
