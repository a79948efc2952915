package scoring

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catrun/internal/runner"
)

// MaxNameLength caps submitted display names, in runes.
const MaxNameLength = 12

const defaultCallTimeout = 5 * time.Second

// Outcome is what the backend said about a finished run.
type Outcome struct {
	SessionID     SessionID // Empty when the run was not persisted
	Result        runner.Result
	TopRank       bool    // The run may be named
	Percentile    float64 // Valid when HasPercentile
	HasPercentile bool
}

// ReporterConfig identifies the player and build to the backend.
type ReporterConfig struct {
	UserID      string
	Version     string
	GroupID     string
	CallTimeout time.Duration
}

// pending tracks one run's StartSession call.
type pending struct {
	done chan struct{}
	id   SessionID
}

// Reporter adapts a Backend to runner.ScoreSink. Every failure is logged and
// degrades to the "nothing saved" outcome; none reaches the game loop.
type Reporter struct {
	backend Backend
	logger  *log.Logger
	cfg     ReporterConfig

	mu      sync.Mutex
	current *pending
	closed  bool

	outcomes chan Outcome
	wg       sync.WaitGroup
}

// NewReporter creates a reporter. A nil backend disables persistence.
func NewReporter(backend Backend, logger *log.Logger, cfg ReporterConfig) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	return &Reporter{
		backend:  backend,
		logger:   logger,
		cfg:      cfg,
		outcomes: make(chan Outcome, 8),
	}
}

// Outcomes delivers one Outcome per ended run. The channel is closed by Close.
func (r *Reporter) Outcomes() <-chan Outcome {
	return r.outcomes
}

// Wait blocks until all in-flight backend calls have finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

// Close waits for in-flight calls and closes the outcome channel. Later
// session notifications are ignored.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	close(r.outcomes)
}

// SessionStarted implements runner.ScoreSink.
func (r *Reporter) SessionStarted() {
	p := &pending{done: make(chan struct{})}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.current = p
	if r.backend == nil {
		r.mu.Unlock()
		close(p.done)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer close(p.done)

		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.CallTimeout)
		defer cancel()

		id, err := r.backend.StartSession(ctx, r.cfg.UserID, r.cfg.Version, r.cfg.GroupID)
		if err != nil {
			r.logger.Warn("start session failed, run will not be saved", "error", err)
			return
		}
		p.id = id
		r.logger.Debug("session started", "session", id)
	}()
}

// SessionEnded implements runner.ScoreSink.
func (r *Reporter) SessionEnded(res runner.Result) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	p := r.current
	r.current = nil
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		r.deliver(r.finish(p, res))
	}()
}

// finish records the run and asks the backend how it ranks.
func (r *Reporter) finish(p *pending, res runner.Result) Outcome {
	out := Outcome{Result: res}
	if r.backend == nil {
		return out
	}
	if p != nil {
		<-p.done
		out.SessionID = p.id
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.CallTimeout)
	defer cancel()

	// Rank against the board as it was before this run lands on it.
	if out.SessionID != "" {
		top, err := r.backend.IsTopRank(ctx, res.Score, r.cfg.GroupID)
		if err != nil {
			r.logger.Warn("top rank check failed", "error", err)
		}
		out.TopRank = err == nil && top

		if err := r.backend.EndSession(ctx, out.SessionID, res.Score, res.Distance); err != nil {
			r.logger.Warn("end session failed", "session", out.SessionID, "error", err)
			out.SessionID = ""
			out.TopRank = false
		}
	}

	pct, err := r.backend.Percentile(ctx, res.Score, r.cfg.GroupID)
	if err != nil {
		r.logger.Warn("percentile lookup failed", "error", err)
	} else {
		out.Percentile = pct
		out.HasPercentile = true
	}

	r.logger.Info("run finished", "score", res.Score, "session", out.SessionID, "top", out.TopRank)
	return out
}

func (r *Reporter) deliver(out Outcome) {
	select {
	case r.outcomes <- out:
	default:
		r.logger.Warn("outcome dropped, nobody is listening", "score", out.Result.Score)
	}
}

// SubmitName names a top-ranked run. It blocks on the backend and is meant
// to be called off the game loop.
func (r *Reporter) SubmitName(ctx context.Context, id SessionID, name string) error {
	if id == "" || r.backend == nil {
		return ErrNoSession
	}
	name = CleanName(name)
	if name == "" {
		name = "anonymous"
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	if err := r.backend.SubmitName(ctx, id, name); err != nil {
		r.logger.Warn("submit name failed", "session", id, "error", err)
		return err
	}
	return nil
}

// CleanName trims whitespace, drops control characters and caps the length.
func CleanName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	return strings.TrimSpace(string(runes))
}
