package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/catrun/internal/runner"
	"github.com/vovakirdan/catrun/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// finishRun starts and ends a run in one step.
func finishRun(t *testing.T, s *Store, userID, groupID string, score int) scoring.SessionID {
	t.Helper()
	ctx := context.Background()
	id, err := s.StartSession(ctx, userID, "test", groupID)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if err := s.EndSession(ctx, id, score, float64(score)/100); err != nil {
		t.Fatalf("EndSession() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	finishRun(t, store, "u1", "", 300)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 300 {
		t.Errorf("runs after reopen = %+v, expected one run with score 300", runs)
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.StartSession(ctx, "u1", "v1", "g")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if id == "" {
		t.Fatal("StartSession() returned an empty id")
	}

	// In-progress runs are not on the board.
	runs, _ := store.TopRuns(ctx, "g", 10)
	if len(runs) != 0 {
		t.Errorf("in-progress run listed: %+v", runs)
	}

	if err := store.EndSession(ctx, id, 1234, 12.5); err != nil {
		t.Fatalf("EndSession() failed: %v", err)
	}
	if err := store.EndSession(ctx, id, 9999, 99); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second EndSession() error = %v, expected ErrRunNotFound", err)
	}

	if err := store.SubmitName(ctx, id, "Tom"); err != nil {
		t.Fatalf("SubmitName() failed: %v", err)
	}

	runs, err = store.TopRuns(ctx, "g", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.Score != 1234 || r.Distance != 12.5 || r.Name != "Tom" || r.UserID != "u1" || r.Version != "v1" {
		t.Errorf("run = %+v", r)
	}
	if r.EndedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		t.Errorf("timestamps started=%v ended=%v", r.StartedAt, r.EndedAt)
	}
}

func TestStoreUnknownRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.EndSession(ctx, "missing", 1, 1); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("EndSession() error = %v, expected ErrRunNotFound", err)
	}
	if err := store.SubmitName(ctx, "missing", "x"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("SubmitName() error = %v, expected ErrRunNotFound", err)
	}

	id, _ := store.StartSession(ctx, "u", "v", "")
	if err := store.SubmitName(ctx, id, "early"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("SubmitName() on running run error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreTopRunsOrderAndGroups(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	finishRun(t, store, "u1", "a", 100)
	finishRun(t, store, "u1", "a", 50)
	finishRun(t, store, "u2", "a", 200)
	finishRun(t, store, "u2", "b", 500)

	runs, err := store.TopRuns(ctx, "a", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, expected := range []int{200, 100, 50} {
		if runs[i].Score != expected {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, expected)
		}
	}

	limited, _ := store.TopRuns(ctx, "a", 2)
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d runs", len(limited))
	}

	other, _ := store.TopRuns(ctx, "b", 10)
	if len(other) != 1 || other[0].Score != 500 {
		t.Errorf("group b = %+v", other)
	}
}

func TestStoreTopRunsTieKeepsEarlier(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := finishRun(t, store, "u1", "", 100)
	finishRun(t, store, "u2", "", 100)

	runs, _ := store.TopRuns(ctx, "", 10)
	if len(runs) != 2 || runs[0].ID != string(first) {
		t.Errorf("tie order = %+v, expected %s first", runs, first)
	}
}

func TestStoreIsTopRank(t *testing.T) {
	store := openTestStore(t)
	store.SetTopN(3)
	ctx := context.Background()

	check := func(score int, expected bool) {
		t.Helper()
		got, err := store.IsTopRank(ctx, score, "")
		if err != nil {
			t.Fatalf("IsTopRank() failed: %v", err)
		}
		if got != expected {
			t.Errorf("IsTopRank(%d) = %v, expected %v", score, got, expected)
		}
	}

	// Empty board
	check(1, true)
	check(0, false)

	finishRun(t, store, "u", "", 300)
	finishRun(t, store, "u", "", 200)
	check(10, true) // board not full

	finishRun(t, store, "u", "", 100)
	check(99, false)
	check(100, false) // tie does not displace
	check(101, true)
	check(1000, true)

	// Other groups are separate boards.
	got, _ := store.IsTopRank(ctx, 1, "other")
	if !got {
		t.Error("empty group should accept any positive score")
	}
}

func TestStorePercentile(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	pct, err := store.Percentile(ctx, 100, "")
	if err != nil {
		t.Fatalf("Percentile() failed: %v", err)
	}
	if pct != 100 {
		t.Errorf("empty board percentile = %v, expected 100", pct)
	}

	for _, s := range []int{400, 300, 200, 100} {
		finishRun(t, store, "u", "", s)
	}

	tests := []struct {
		score    int
		expected float64
	}{
		{500, 25},
		{400, 25},
		{300, 50},
		{250, 75},
		{100, 100},
		{0, 100},
	}

	for _, tt := range tests {
		got, err := store.Percentile(ctx, tt.score, "")
		if err != nil {
			t.Fatalf("Percentile() failed: %v", err)
		}
		if got != tt.expected {
			t.Errorf("Percentile(%d) = %v, expected %v", tt.score, got, tt.expected)
		}
		if got <= 0 || got > 100 {
			t.Errorf("Percentile(%d) = %v outside (0, 100]", tt.score, got)
		}
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.BestRun(ctx, "nobody")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if ok {
		t.Error("expected no best run for unknown user")
	}

	finishRun(t, store, "u1", "", 100)
	finishRun(t, store, "u1", "", 700)
	finishRun(t, store, "u2", "", 900)

	best, ok, err := store.BestRun(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("BestRun() = %v, %v", ok, err)
	}
	if best.Score != 700 {
		t.Errorf("BestRun().Score = %d, expected 700", best.Score)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	finishRun(t, store, "u", "a", 100)
	finishRun(t, store, "u", "b", 100)

	if err := store.ClearRuns(ctx, "a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns(ctx, "a", 10)
	if len(runs) != 0 {
		t.Errorf("expected no runs in cleared group, got %d", len(runs))
	}
	runs, _ = store.TopRuns(ctx, "b", 10)
	if len(runs) != 1 {
		t.Errorf("expected other group untouched, got %d runs", len(runs))
	}
}

func TestStoreWithReporter(t *testing.T) {
	store := openTestStore(t)
	r := scoring.NewReporter(store, nil, scoring.ReporterConfig{UserID: "u1", Version: "test"})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 420, Distance: 4.2})

	var out scoring.Outcome
	select {
	case out = <-r.Outcomes():
	case <-time.After(5 * time.Second):
		t.Fatal("no outcome delivered")
	}

	if out.SessionID == "" || !out.TopRank {
		t.Fatalf("outcome = %+v, expected a saved top run", out)
	}
	if out.Percentile != 100 {
		t.Errorf("only run percentile = %v, expected 100", out.Percentile)
	}

	if err := r.SubmitName(context.Background(), out.SessionID, "Luna"); err != nil {
		t.Fatalf("SubmitName() failed: %v", err)
	}

	best, ok, err := store.BestRun(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("BestRun() = %v, %v", ok, err)
	}
	if best.Name != "Luna" || best.Score != 420 {
		t.Errorf("best run = %+v", best)
	}
}

func TestRunDisplayName(t *testing.T) {
	if got := (Run{}).DisplayName(); got != "anonymous" {
		t.Errorf("DisplayName() = %q, expected anonymous", got)
	}
	if got := (Run{Name: "Tom"}).DisplayName(); got != "Tom" {
		t.Errorf("DisplayName() = %q, expected Tom", got)
	}
}
