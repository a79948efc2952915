// Package storage provides SQLite-based persistence for runner scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/catrun/internal/scoring"
)

// DefaultTopN is the leaderboard size used when none is configured.
const DefaultTopN = 10

// ErrRunNotFound is returned when a run ID does not exist or has already ended.
var ErrRunNotFound = errors.New("storage: run not found")

var _ scoring.Backend = (*Store)(nil)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db   *sql.DB
	topN int
	now  func() time.Time
}

// Run represents a single finished or in-progress run.
type Run struct {
	ID        string
	UserID    string
	Version   string
	GroupID   string
	Score     int
	Distance  float64
	Name      string
	StartedAt time.Time
	EndedAt   time.Time // Zero while the run is in progress
}

// DisplayName returns the submitted name or a placeholder.
func (r Run) DisplayName() string {
	if r.Name == "" {
		return "anonymous"
	}
	return r.Name
}

// DefaultPath returns ~/.catrun/scores.db.
func DefaultPath() string {
	return filepath.Join("~", ".catrun", "scores.db")
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath()
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, topN: DefaultTopN, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// SetTopN changes the leaderboard size used by IsTopRank.
func (s *Store) SetTopN(n int) {
	if n > 0 {
		s.topN = n
	}
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			version TEXT NOT NULL DEFAULT '',
			group_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			name TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			ended_at INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(group_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_user ON runs(user_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records the start of a run.
func (s *Store) StartSession(ctx context.Context, userID, version, groupID string) (scoring.SessionID, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, user_id, version, group_id, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, userID, version, groupID, s.now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return scoring.SessionID(id), nil
}

// EndSession stores the final score of a run. A run can only end once.
func (s *Store) EndSession(ctx context.Context, id scoring.SessionID, score int, distance float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET score = ?, distance = ?, ended_at = ?
		 WHERE id = ? AND ended_at IS NULL`,
		score, distance, s.now().UnixMilli(), string(id),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end run: %w", err)
	}
	return expectOneRow(res, id)
}

// IsTopRank reports whether score would enter the top N of the group.
// Once the board is full, a score must beat the last entry; ties keep the
// existing entry.
func (s *Store) IsTopRank(ctx context.Context, score int, groupID string) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	var atLeast int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs
		 WHERE group_id = ? AND ended_at IS NOT NULL AND score >= ?`,
		groupID, score,
	).Scan(&atLeast)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return atLeast < s.topN, nil
}

// SubmitName attaches a display name to an ended run.
func (s *Store) SubmitName(ctx context.Context, id scoring.SessionID, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET name = ? WHERE id = ? AND ended_at IS NOT NULL`,
		name, string(id),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save name: %w", err)
	}
	return expectOneRow(res, id)
}

// Percentile returns the "top N%" standing of score among the group's ended
// runs: 100 * (runs with a higher score + 1) / runs. An empty group yields 100.
func (s *Store) Percentile(ctx context.Context, score int, groupID string) (float64, error) {
	var total, higher int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN score > ? THEN 1 ELSE 0 END), 0)
		 FROM runs WHERE group_id = ? AND ended_at IS NOT NULL`,
		score, groupID,
	).Scan(&total, &higher)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query percentile: %w", err)
	}
	return percentile(higher, total), nil
}

func percentile(higher, total int) float64 {
	if total <= 0 {
		return 100
	}
	p := float64(higher+1) / float64(total) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// TopRuns retrieves the best ended runs of the group.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(ctx context.Context, groupID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.topN
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, version, group_id, score, distance, name, started_at, ended_at
		 FROM runs
		 WHERE group_id = ? AND ended_at IS NOT NULL
		 ORDER BY score DESC, ended_at ASC, rowid ASC
		 LIMIT ?`,
		groupID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the user's highest-scoring ended run.
// Returns false if the user has no ended runs.
func (s *Store) BestRun(ctx context.Context, userID string) (Run, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, version, group_id, score, distance, name, started_at, ended_at
		 FROM runs
		 WHERE user_id = ? AND ended_at IS NOT NULL
		 ORDER BY score DESC, ended_at ASC, rowid ASC
		 LIMIT 1`,
		userID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	return r, true, nil
}

// ClearRuns deletes all runs of the group.
func (s *Store) ClearRuns(ctx context.Context, groupID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE group_id = ?", groupID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r       Run
		started int64
		ended   sql.NullInt64
	)
	err := sc.Scan(&r.ID, &r.UserID, &r.Version, &r.GroupID, &r.Score, &r.Distance, &r.Name, &started, &ended)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.StartedAt = time.UnixMilli(started)
	if ended.Valid {
		r.EndedAt = time.UnixMilli(ended.Int64)
	}
	return r, nil
}

func expectOneRow(res sql.Result, id scoring.SessionID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
