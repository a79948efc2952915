// Package scoring connects finished runs to a score backend without ever
// blocking the game loop. Backend calls run on goroutines; their results
// come back as Outcome values on a channel.
package scoring

import (
	"context"
	"errors"
)

// SessionID identifies a run on the backend. The empty ID means the run is
// not persisted.
type SessionID string

// ErrNoSession is returned when an operation needs a persisted run but the
// session has no ID.
var ErrNoSession = errors.New("scoring: no persisted session")

// Backend stores runs and answers ranking questions.
type Backend interface {
	// StartSession records the start of a run and returns its ID.
	StartSession(ctx context.Context, userID, version, groupID string) (SessionID, error)
	// EndSession records the final score and distance of a run.
	EndSession(ctx context.Context, id SessionID, score int, distance float64) error
	// IsTopRank reports whether score would enter the group's leaderboard.
	IsTopRank(ctx context.Context, score int, groupID string) (bool, error)
	// SubmitName attaches a display name to a run.
	SubmitName(ctx context.Context, id SessionID, name string) error
	// Percentile returns the "top N%" standing of score in (0, 100].
	Percentile(ctx context.Context, score int, groupID string) (float64, error)
}
