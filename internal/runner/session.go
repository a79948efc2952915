// Package runner implements the side-scrolling runner simulation: player
// physics, spawning, collision, difficulty and the session lifecycle.
// It has no terminal or storage dependencies; frontends drive it through
// Tick or Update and read State after each call.
package runner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
)

// HUD anchor that pickup messages drift toward.
const (
	hudTargetX = 64
	hudTargetY = 48
)

// Result summarizes a finished session.
type Result struct {
	Score    int
	Distance float64
	PlayTime time.Duration
	Speed    float64
}

// ScoreSink is notified about session boundaries. Implementations must not
// block; the session calls them from inside a tick.
type ScoreSink interface {
	SessionStarted()
	SessionEnded(Result)
}

// Deps are the session's external collaborators. Nil fields get defaults:
// the system clock, no input, a source seeded from RuntimeConfig.Seed and
// no score sink.
type Deps struct {
	Clock Clock
	Input InputSource
	Rand  Rand
	Sink  ScoreSink
}

// Session orchestrates one player's run, from the start screen through
// game over and any number of restarts.
type Session struct {
	cfg      config.RunnerConfig
	runtime  core.RuntimeConfig
	curve    *config.DifficultyCurve
	spawner  *Spawner
	resolver Resolver
	frames   *FrameClock
	input    InputSource
	sink     ScoreSink

	state  State
	events []Event
}

// NewSession creates a session in the not-started phase.
func NewSession(cfg config.RunnerConfig, runtime core.RuntimeConfig, deps Deps) *Session {
	rng := deps.Rand
	if rng == nil {
		seed := runtime.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	input := deps.Input
	if input == nil {
		input = FixedInput(0)
	}

	s := &Session{
		cfg:      cfg,
		runtime:  runtime,
		curve:    config.NewDifficultyCurve(cfg.Difficulty),
		spawner:  NewSpawner(cfg, rng),
		resolver: NewResolver(cfg),
		frames:   NewFrameClock(deps.Clock),
		input:    input,
		sink:     deps.Sink,
		state:    newState(cfg),
	}
	return s
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.RunnerConfig {
	return s.cfg
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.state.Phase
}

// State returns the live session state. Callers must treat it as read-only.
func (s *Session) State() *State {
	return &s.state
}

// Result returns the session summary so far.
func (s *Session) Result() Result {
	return Result{
		Score:    int(s.state.Score),
		Distance: s.state.Distance,
		PlayTime: time.Duration(s.state.PlayTime * float64(time.Millisecond)),
		Speed:    s.state.Speed,
	}
}

// DrainEvents returns the events emitted since the previous call.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}

// Start leaves the start screen. It is a no-op in any other phase.
func (s *Session) Start() {
	if s.state.Phase != PhaseNotStarted {
		return
	}
	s.state.Phase = PhaseRunning
	s.frames.Rebase()
	if s.sink != nil {
		s.sink.SessionStarted()
	}
}

// Pause freezes a running session.
func (s *Session) Pause() {
	if s.state.Phase == PhaseRunning {
		s.state.Phase = PhasePaused
	}
}

// Resume continues a paused session. Time spent paused is discarded.
func (s *Session) Resume() {
	if s.state.Phase != PhasePaused {
		return
	}
	s.state.Phase = PhaseRunning
	s.frames.Rebase()
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() {
	switch s.state.Phase {
	case PhaseRunning:
		s.Pause()
	case PhasePaused:
		s.Resume()
	}
}

// Restart discards the current run and starts a new one. It is a no-op
// before the first Start.
func (s *Session) Restart() {
	if s.state.Phase == PhaseNotStarted {
		return
	}
	s.state = newState(s.cfg)
	s.events = nil
	s.state.Phase = PhaseRunning
	s.frames.Rebase()
	if s.sink != nil {
		s.sink.SessionStarted()
	}
}

// Tick reads the clock and advances the session by the elapsed time.
// Frontends call it once per frame regardless of phase.
func (s *Session) Tick() {
	s.Update(s.frames.Delta())
}

// Update advances the session by dt milliseconds. Outside the running
// phase it changes nothing.
func (s *Session) Update(dt float64) {
	dt = ClampDelta(dt, s.cfg.Clock.NominalFrameMs, s.cfg.Clock.MaxDeltaMs)
	if s.state.Phase != PhaseRunning {
		return
	}
	factor := dt / s.cfg.Clock.NominalFrameMs
	st := &s.state

	st.PlayTime += dt
	st.Background.Update(st.Speed, factor)

	if st.Player.Update(s.input.ActiveControls(), dt, factor) {
		s.emit(EventJump)
	}

	s.updateProjectiles(factor)
	if st.Over() {
		st.purge()
		return
	}

	s.spawner.SpawnObstacles(st, dt)
	s.updateObstacles(dt, factor)
	st.ObstacleEdge -= st.Speed * factor
	if st.Over() {
		st.purge()
		return
	}

	s.spawner.SpawnItems(st, dt)
	s.updateItems(factor)
	st.ItemEdge -= st.Speed * factor

	for _, m := range st.Messages {
		m.update(dt, factor, s.cfg.Messages)
	}

	st.purge()

	// Score accrues at the speed the tick was played at; the new speed
	// applies from the next tick.
	st.Score += st.Speed * dt * s.cfg.Scoring.ScoreFactor
	st.Distance += st.Speed * dt * s.cfg.Scoring.DistanceFactor
	st.Speed = core.ClampF(max(s.curve.Speed(st.PlayTime), st.Speed), s.curve.Initial(), s.curve.Max())
}

func (s *Session) updateProjectiles(factor float64) {
	st := &s.state
	for _, pr := range st.Projectiles {
		if pr.Deleted {
			continue
		}
		pr.update(factor, s.cfg.World.Width, s.cfg.World.Height)
		if s.resolver.Collides(&st.Player, pr) {
			pr.Deleted = true
			s.gameOver()
			return
		}
	}
}

func (s *Session) updateObstacles(dt, factor float64) {
	st := &s.state
	oc := s.cfg.Obstacles
	frameInterval := 1000 / oc.AnimFPS

	for _, o := range st.Obstacles {
		if o.Deleted {
			continue
		}
		o.update(st.Speed, dt, factor, frameInterval, oc.AnimFrames)
		if o.ReadyToFire(s.cfg.World.Width, &st.Player) {
			s.fire(o)
		}
		if s.resolver.Collides(&st.Player, o) {
			s.hitObstacle(o)
			if st.Over() {
				return
			}
		}
	}
}

// fire launches the drone's single projectile at the player's current center.
func (s *Session) fire(o *Obstacle) {
	o.Fired = true
	ox, oy := o.Bounds().Center()
	tx, ty := s.state.Player.Center()
	s.state.Projectiles = append(s.state.Projectiles, NewProjectile(ox, oy, tx, ty, s.cfg.Projectiles))
	s.emit(EventFire)
}

// hitObstacle resolves an obstacle collision. The grace window ignores the
// hit; otherwise a shield absorbs it and destroys the obstacle; otherwise
// the run ends.
func (s *Session) hitObstacle(o *Obstacle) {
	p := &s.state.Player
	if p.Invincible > 0 {
		return
	}
	if p.HitShield() {
		o.Deleted = true
		px, py := p.Center()
		s.message("BLOCKED!", px, py-p.Height, px, py-2*p.Height, core.ColorBrightCyan)
		s.emit(EventShieldBlock)
		return
	}
	s.gameOver()
}

func (s *Session) updateItems(factor float64) {
	st := &s.state
	ic := s.cfg.Items
	for _, it := range st.Items {
		if it.Deleted {
			continue
		}
		it.update(st.Speed, factor, ic.FloatSpeed, ic.FloatAmplitude)
		if !s.resolver.Collides(&st.Player, it) {
			continue
		}
		it.Deleted = true
		x, y := it.Bounds().Center()
		switch it.Kind {
		case ItemScore:
			st.Score += ic.ScoreBonus
			s.message(fmt.Sprintf("+%d", int(ic.ScoreBonus)), x, y, hudTargetX, hudTargetY, core.ColorBrightYellow)
		case ItemShield:
			if st.Player.AddShield() {
				s.message("SHIELD +1", x, y, hudTargetX, hudTargetY, core.ColorBrightCyan)
			} else {
				s.message("SHIELD MAX", x, y, hudTargetX, hudTargetY, core.ColorCyan)
			}
		}
		s.emit(EventItem)
	}
}

func (s *Session) message(text string, x, y, tx, ty float64, c core.Color) {
	s.state.Messages = append(s.state.Messages, NewFloatingMessage(text, x, y, tx, ty, c))
}

// gameOver ends the run exactly once.
func (s *Session) gameOver() {
	if s.state.Phase == PhaseGameOver {
		return
	}
	s.state.Phase = PhaseGameOver
	s.emit(EventGameOver)
	if s.sink != nil {
		s.sink.SessionEnded(s.Result())
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
