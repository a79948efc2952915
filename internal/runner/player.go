package runner

import (
	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
)

// Mode is the player's movement state.
type Mode uint8

const (
	ModeRun Mode = iota
	ModeJump
	ModeSlide
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeJump:
		return "jump"
	case ModeSlide:
		return "slide"
	default:
		return "unknown"
	}
}

// Animation frame ranges of the player sprite sheet.
const (
	runFrameFirst   = 0
	runFrameLast    = 7
	jumpFrameFirst  = 8
	slideFrameFirst = 12
	slideFrameLast  = 15
)

// Player is the runner character.
type Player struct {
	X, Y   float64
	VY     float64 // Positive is downward
	Width  float64
	Height float64
	Mode   Mode

	Shields    int
	Invincible float64 // Remaining grace window in ms

	Frame      int // Sprite frame, 0-15
	frameTimer float64

	cfg    config.PlayerConfig
	worldH float64
}

// NewPlayer creates a player standing on the floor at its base position.
func NewPlayer(cfg config.RunnerConfig) Player {
	p := Player{
		X:      cfg.Player.X,
		Width:  cfg.Player.Size,
		Height: cfg.Player.Size,
		Mode:   ModeRun,
		cfg:    cfg.Player,
		worldH: cfg.World.Height,
	}
	p.Y = p.FloorY()
	return p
}

// FloorY returns the resting Y for the current height.
func (p *Player) FloorY() float64 {
	return p.worldH - p.Height - p.cfg.GroundOffset
}

// OnGround reports whether the player is at or below the floor.
func (p *Player) OnGround() bool {
	return p.Y >= p.FloorY()
}

// Box returns the sprite bounds.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Center returns the center of the sprite bounds.
func (p *Player) Center() (float64, float64) {
	return p.Box().Center()
}

// Update advances the state machine and physics by one tick.
// factor is dt expressed in nominal frames. It reports whether a jump
// started this tick.
func (p *Player) Update(in core.ControlSet, dt, factor float64) (jumped bool) {
	if p.Y > p.FloorY() {
		p.Y = p.FloorY()
	}

	switch p.Mode {
	case ModeRun:
		if in.Jump() {
			p.VY -= p.cfg.JumpPower
			p.Mode = ModeJump
			p.Frame = jumpFrameFirst
			jumped = true
		} else if in.Has(core.ControlDown) {
			p.Mode = ModeSlide
			p.Frame = slideFrameFirst
		}
	case ModeJump:
		// Releasing early cuts the ascent short.
		if !in.Jump() && p.VY < 0 {
			p.VY *= p.cfg.ReleaseDamping
		}
		if p.OnGround() {
			p.Mode = ModeRun
			p.Frame = runFrameFirst
		}
	case ModeSlide:
		if !in.Has(core.ControlDown) {
			p.Mode = ModeRun
			p.Frame = runFrameFirst
		}
	}

	p.applyHeight()

	p.Y += p.VY * factor
	p.drift(factor)

	if !p.OnGround() {
		p.VY += p.cfg.Gravity * factor
	} else {
		p.VY = 0
		if p.Mode != ModeJump {
			p.Y = p.FloorY()
		}
	}

	if p.Invincible > 0 {
		p.Invincible = max(p.Invincible-dt, 0)
	}

	p.animate(dt)
	return jumped
}

// applyHeight sets the sprite height for the current mode. A sliding
// player is kept glued to the floor.
func (p *Player) applyHeight() {
	if p.Mode == ModeSlide {
		p.Height = p.cfg.Size * p.cfg.SlideRatio
		p.Y = p.FloorY()
		return
	}
	p.Height = p.cfg.Size
}

// drift nudges the player forward while airborne and back to base otherwise.
func (p *Player) drift(factor float64) {
	limit := p.cfg.X + p.cfg.JumpDrift
	if p.Mode == ModeJump {
		if p.X < limit {
			p.X = min(p.X+p.cfg.DriftForward*factor, limit)
		}
		return
	}
	if p.X > p.cfg.X {
		p.X = max(p.X-p.cfg.DriftBack*factor, p.cfg.X)
	}
}

// animate advances the sprite frame. Jump frames follow vertical velocity;
// run and slide frames cycle on a timer.
func (p *Player) animate(dt float64) {
	if p.Mode == ModeJump {
		half := p.cfg.JumpPower / 2
		switch {
		case p.VY < -half:
			p.Frame = 8
		case p.VY < 0:
			p.Frame = 9
		case p.VY > half:
			p.Frame = 11
		case p.VY > 0:
			p.Frame = 10
		}
		return
	}

	first, last := runFrameFirst, runFrameLast
	if p.Mode == ModeSlide {
		first, last = slideFrameFirst, slideFrameLast
	}
	if p.Frame < first || p.Frame > last {
		p.Frame = first
	}

	interval := 1000 / p.cfg.RunFPS
	if p.frameTimer > interval {
		p.Frame++
		if p.Frame > last {
			p.Frame = first
		}
		p.frameTimer = 0
	} else {
		p.frameTimer += dt
	}
}

// AddShield grants one shield. It reports false when already at the cap.
func (p *Player) AddShield() bool {
	if p.Shields >= p.cfg.MaxShields {
		return false
	}
	p.Shields++
	return true
}

// HitShield consumes a shield and starts the grace window. It reports false
// when no shield was available.
func (p *Player) HitShield() bool {
	if p.Shields <= 0 {
		return false
	}
	p.Shields--
	p.Invincible = p.cfg.InvincibleMs
	return true
}
