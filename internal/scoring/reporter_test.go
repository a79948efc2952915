package scoring

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catrun/internal/runner"
)

type fakeBackend struct {
	mu sync.Mutex

	startErr   error
	endErr     error
	rankErr    error
	pctErr     error
	top        bool
	percentile float64

	nextID int
	ended  map[SessionID]int
	names  map[SessionID]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		ended: make(map[SessionID]int),
		names: make(map[SessionID]string),
	}
}

func (f *fakeBackend) StartSession(ctx context.Context, userID, version, groupID string) (SessionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return "", f.startErr
	}
	f.nextID++
	return SessionID(string(rune('a' + f.nextID - 1))), nil
}

func (f *fakeBackend) EndSession(ctx context.Context, id SessionID, score int, distance float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.endErr != nil {
		return f.endErr
	}
	f.ended[id] = score
	return nil
}

func (f *fakeBackend) IsTopRank(ctx context.Context, score int, groupID string) (bool, error) {
	return f.top, f.rankErr
}

func (f *fakeBackend) SubmitName(ctx context.Context, id SessionID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[id] = name
	return nil
}

func (f *fakeBackend) Percentile(ctx context.Context, score int, groupID string) (float64, error) {
	return f.percentile, f.pctErr
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func receive(t *testing.T, r *Reporter) Outcome {
	t.Helper()
	select {
	case out := <-r.Outcomes():
		return out
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome delivered")
		return Outcome{}
	}
}

func TestReporterFullRun(t *testing.T) {
	b := newFakeBackend()
	b.top = true
	b.percentile = 12.5
	r := NewReporter(b, quietLogger(), ReporterConfig{UserID: "u", Version: "test"})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 420, Distance: 3.5})

	out := receive(t, r)
	if out.SessionID != "a" {
		t.Errorf("SessionID = %q, expected %q", out.SessionID, "a")
	}
	if !out.TopRank {
		t.Error("expected TopRank")
	}
	if !out.HasPercentile || out.Percentile != 12.5 {
		t.Errorf("Percentile = %v (ok=%v), expected 12.5", out.Percentile, out.HasPercentile)
	}
	if out.Result.Score != 420 {
		t.Errorf("Result.Score = %d, expected 420", out.Result.Score)
	}
	if got := b.ended["a"]; got != 420 {
		t.Errorf("backend recorded score %d, expected 420", got)
	}

	if err := r.SubmitName(context.Background(), out.SessionID, "  Whiskers  "); err != nil {
		t.Fatalf("SubmitName: %v", err)
	}
	if got := b.names["a"]; got != "Whiskers" {
		t.Errorf("stored name = %q, expected %q", got, "Whiskers")
	}
}

func TestReporterStartFailureDegrades(t *testing.T) {
	b := newFakeBackend()
	b.startErr = errors.New("disk full")
	b.top = true
	b.percentile = 50
	r := NewReporter(b, quietLogger(), ReporterConfig{})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 10})

	out := receive(t, r)
	if out.SessionID != "" {
		t.Errorf("SessionID = %q, expected empty", out.SessionID)
	}
	if out.TopRank {
		t.Error("an unsaved run must not be offered a name")
	}
	if !out.HasPercentile {
		t.Error("percentile should still be reported")
	}
	if len(b.ended) != 0 {
		t.Errorf("EndSession called for unsaved run: %v", b.ended)
	}
	if err := r.SubmitName(context.Background(), out.SessionID, "x"); !errors.Is(err, ErrNoSession) {
		t.Errorf("SubmitName error = %v, expected ErrNoSession", err)
	}
}

func TestReporterEndFailureDegrades(t *testing.T) {
	b := newFakeBackend()
	b.endErr = errors.New("locked")
	b.top = true
	r := NewReporter(b, quietLogger(), ReporterConfig{})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 10})

	out := receive(t, r)
	if out.SessionID != "" || out.TopRank {
		t.Errorf("outcome = %+v, expected unsaved run", out)
	}
}

func TestReporterLookupFailures(t *testing.T) {
	b := newFakeBackend()
	b.top = true
	b.rankErr = errors.New("boom")
	b.pctErr = errors.New("boom")
	r := NewReporter(b, quietLogger(), ReporterConfig{})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 10})

	out := receive(t, r)
	if out.SessionID == "" {
		t.Error("run should still be saved")
	}
	if out.TopRank {
		t.Error("TopRank should be false when the check fails")
	}
	if out.HasPercentile {
		t.Error("HasPercentile should be false when the lookup fails")
	}
}

func TestReporterNilBackend(t *testing.T) {
	r := NewReporter(nil, quietLogger(), ReporterConfig{})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 99})

	out := receive(t, r)
	if out.SessionID != "" || out.TopRank || out.HasPercentile {
		t.Errorf("outcome = %+v, expected nothing saved", out)
	}
	if out.Result.Score != 99 {
		t.Errorf("Result.Score = %d, expected 99", out.Result.Score)
	}
	if err := r.SubmitName(context.Background(), "a", "x"); !errors.Is(err, ErrNoSession) {
		t.Errorf("SubmitName error = %v, expected ErrNoSession", err)
	}
}

func TestReporterRestartUsesNewSession(t *testing.T) {
	b := newFakeBackend()
	r := NewReporter(b, quietLogger(), ReporterConfig{})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 1})
	first := receive(t, r)

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 2})
	second := receive(t, r)

	r.Wait()
	if first.SessionID == second.SessionID {
		t.Errorf("restart reused session %q", first.SessionID)
	}
	if b.ended[first.SessionID] != 1 || b.ended[second.SessionID] != 2 {
		t.Errorf("ended = %v", b.ended)
	}
}

func TestReporterImplementsScoreSink(t *testing.T) {
	var _ runner.ScoreSink = NewReporter(nil, quietLogger(), ReporterConfig{})
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"Tom", "Tom"},
		{"  padded  ", "padded"},
		{"tab\tname", "tabname"},
		{"abcdefghijklmnop", "abcdefghijkl"},
		{"котокотокотокот", "котокотокото"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.expected {
			t.Errorf("CleanName(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestReporterClose(t *testing.T) {
	b := newFakeBackend()
	r := NewReporter(b, quietLogger(), ReporterConfig{})

	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 5})
	r.Close()

	out, ok := <-r.Outcomes()
	if !ok || out.Result.Score != 5 {
		t.Fatalf("pending outcome lost: %+v, %v", out, ok)
	}
	if _, ok := <-r.Outcomes(); ok {
		t.Error("outcome channel should be closed")
	}

	// Notifications after Close are ignored.
	r.SessionStarted()
	r.SessionEnded(runner.Result{Score: 6})
	r.Close()
}
