package core

import "time"

// RuntimeConfig contains configuration passed to a session at creation.
// The simulation works in fixed world units; ScreenW/ScreenH only affect the
// draw pass.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frontend frames per second (default 60)
	Seed     int64  // RNG seed for reproducible spawning
	Version  string // Build version reported to the score backend
	GroupID  string // Optional leaderboard group
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the wall-clock interval between frontend frames.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
