package runner

import "github.com/vovakirdan/catrun/internal/config"

// Phase is the lifecycle stage of a session.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State is the complete mutable state of one session. The session owns it;
// frontends receive it read-only after each update.
type State struct {
	Phase Phase

	Score    float64
	Distance float64
	PlayTime float64 // ms spent running
	Speed    float64 // world units per nominal frame

	Player      Player
	Obstacles   []*Obstacle
	Items       []*Item
	Projectiles []*Projectile
	Messages    []*FloatingMessage
	Background  Background

	ObstacleTimer    float64
	ObstacleInterval float64
	ItemTimer        float64
	ItemInterval     float64

	// Right edges of the most recently spawned obstacle and item. They
	// scroll with the world even after the entity itself is removed.
	ObstacleEdge float64
	ItemEdge     float64
}

// newState builds the state of a fresh session.
func newState(cfg config.RunnerConfig) State {
	return State{
		Phase:            PhaseNotStarted,
		Speed:            cfg.Difficulty.InitialSpeed,
		Player:           NewPlayer(cfg),
		Obstacles:        make([]*Obstacle, 0, 8),
		Items:            make([]*Item, 0, 8),
		Background:       NewBackground(cfg.World.BackgroundWidth),
		ObstacleInterval: cfg.Obstacles.InitialInterval,
		ItemInterval:     cfg.Items.InitialInterval,
	}
}

// Started reports whether the session has left the start screen.
func (s *State) Started() bool {
	return s.Phase != PhaseNotStarted
}

// Over reports whether the session has ended.
func (s *State) Over() bool {
	return s.Phase == PhaseGameOver
}

// Paused reports whether the session is paused.
func (s *State) Paused() bool {
	return s.Phase == PhasePaused
}

// purge removes entities flagged for deletion, preserving order.
func (s *State) purge() {
	s.Obstacles = compact(s.Obstacles)
	s.Items = compact(s.Items)
	s.Projectiles = compact(s.Projectiles)
	s.Messages = compact(s.Messages)
}

type deletable interface {
	deleted() bool
}

func compact[T deletable](list []T) []T {
	kept := list[:0]
	for _, e := range list {
		if !e.deleted() {
			kept = append(kept, e)
		}
	}
	clear(list[len(kept):])
	return kept
}
